package domain

// Níveis de agregação aceitos pela Graph API
const (
	LevelAccount  = "account"
	LevelCampaign = "campaign"
	LevelAdSet    = "adset"
	LevelAd       = "ad"
)

const (
	DefaultLevel      = LevelAd
	DefaultDatePreset = "last_30d"
)

// Tipos de ação considerados como compra
const (
	ActionPurchase         = "purchase"
	ActionOmniPurchase     = "omni_purchase"
	ActionPixelPurchase    = "offsite_conversion.fb_pixel_purchase"
	TimeGranularityDaily   = "daily"
	TimeGranularityMonthly = "monthly"
	TimeGranularityAllDays = "all_days"
)

// PurchaseActionTypes são os tipos somados em receita e conversões
var PurchaseActionTypes = []string{ActionPurchase, ActionOmniPurchase, ActionPixelPurchase}

// RoasActionTypes são os tipos usados no ROAS por linha (primeira ocorrência)
var RoasActionTypes = []string{ActionPurchase, ActionOmniPurchase}

var validLevels = map[string]bool{
	LevelAccount:  true,
	LevelCampaign: true,
	LevelAdSet:    true,
	LevelAd:       true,
}

// IsValidLevel verifica se o nível é aceito pela API
func IsValidLevel(level string) bool {
	return validLevels[level]
}

// Action é um par {action_type, value} retornado pela Graph API.
// O valor chega como string numérica e deve passar por ParseMetric.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha de insights (conta, campanha, conjunto ou anúncio) em uma janela de datas.
type InsightRow struct {
	AccountID    string `json:"account_id,omitempty"`
	AccountName  string `json:"account_name,omitempty"`
	CampaignID   string `json:"campaign_id,omitempty"`
	CampaignName string `json:"campaign_name,omitempty"`
	AdSetID      string `json:"adset_id,omitempty"`
	AdSetName    string `json:"adset_name,omitempty"`
	AdID         string `json:"ad_id,omitempty"`
	AdName       string `json:"ad_name,omitempty"`

	Impressions  string `json:"impressions,omitempty"`
	Reach        string `json:"reach,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Clicks       string `json:"clicks,omitempty"`
	UniqueClicks string `json:"unique_clicks,omitempty"`
	Spend        string `json:"spend,omitempty"`
	CTR          string `json:"ctr,omitempty"`
	CPC          string `json:"cpc,omitempty"`
	CPM          string `json:"cpm,omitempty"`
	CPP          string `json:"cpp,omitempty"`

	Actions           []Action `json:"actions,omitempty"`
	ActionValues      []Action `json:"action_values,omitempty"`
	CostPerActionType []Action `json:"cost_per_action_type,omitempty"`

	VideoP50WatchedActions      []Action `json:"video_p50_watched_actions,omitempty"`
	VideoP100WatchedActions     []Action `json:"video_p100_watched_actions,omitempty"`
	VideoPlayActions            []Action `json:"video_play_actions,omitempty"`
	VideoThruplayWatchedActions []Action `json:"video_thruplay_watched_actions,omitempty"`
	VideoAvgTimeWatchedActions  []Action `json:"video_avg_time_watched_actions,omitempty"`

	DateStart string `json:"date_start,omitempty"`
	DateStop  string `json:"date_stop,omitempty"`
}

// TimeRange é o intervalo inclusivo no formato YYYY-MM-DD.
// A ordem dos campos define a serialização canônica usada nas chaves de cache.
type TimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

// InsightQuery é o formato de consulta aceito pelos casos de uso de relatório
type InsightQuery struct {
	DatePreset string     `json:"date_preset,omitempty"`
	TimeRange  *TimeRange `json:"time_range,omitempty"`
	Level      string     `json:"level,omitempty"`
	SortBy     string     `json:"sort_by,omitempty"`
	Limit      *int       `json:"limit,omitempty"`
}

// InsightsRequest é o que o cliente de dados de anúncios precisa para buscar linhas
type InsightsRequest struct {
	AccountID       string
	AccessToken     string
	Level           string
	DatePreset      string
	TimeRange       *TimeRange
	TimeGranularity string
	Fields          []string
}
