package domain

// MaxTimeRangeDays é o maior intervalo aceito em uma consulta customizada
const MaxTimeRangeDays = 90

// Valores de date_preset aceitos pela Graph API
var datePresets = map[string]bool{
	"today":               true,
	"yesterday":           true,
	"this_month":          true,
	"last_month":          true,
	"this_quarter":        true,
	"last_quarter":        true,
	"this_year":           true,
	"last_year":           true,
	"last_3d":             true,
	"last_7d":             true,
	"last_14d":            true,
	"last_28d":            true,
	"last_30d":            true,
	"last_90d":            true,
	"last_week_mon_sun":   true,
	"last_week_sun_sat":   true,
	"this_week_mon_today": true,
	"this_week_sun_today": true,
	"maximum":             true,
}

func IsValidDatePreset(preset string) bool {
	return datePresets[preset]
}
