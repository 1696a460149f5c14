package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "12.34", want: 12.34},
		{raw: " 7 ", want: 7},
		{raw: "0", want: 0},
		{raw: "", want: 0},
		{raw: "abc", want: 0},
		{raw: "NaN", want: 0},
		{raw: "Inf", want: 0},
		{raw: "-1.5", want: -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMetric(tt.raw))
		})
	}
}

func TestLookupMetric(t *testing.T) {
	value, ok := LookupMetric("0")
	assert.True(t, ok)
	assert.Zero(t, value)

	for _, raw := range []string{"", " ", "n/a", "NaN"} {
		_, ok := LookupMetric(raw)
		assert.False(t, ok, "raw %q", raw)
	}
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(1000), ParseCount("1000"))
	assert.Equal(t, int64(12), ParseCount("12.9"))
	assert.Equal(t, int64(0), ParseCount("x"))
}

func TestSingleMatchValue_FirstMatchWins(t *testing.T) {
	actions := []domain.Action{
		{ActionType: "link_click", Value: "3"},
		{ActionType: domain.ActionOmniPurchase, Value: "100"},
		{ActionType: domain.ActionPurchase, Value: "50"},
	}

	value, ok := SingleMatchValue(actions, domain.RoasActionTypes...)
	assert.True(t, ok)
	assert.Equal(t, 100.0, value)

	_, ok = SingleMatchValue(actions, "lead")
	assert.False(t, ok)
}

func TestSumMatchingValues_AddsEveryMatch(t *testing.T) {
	actions := []domain.Action{
		{ActionType: domain.ActionPurchase, Value: "50"},
		{ActionType: domain.ActionOmniPurchase, Value: "50"},
		{ActionType: domain.ActionPixelPurchase, Value: "25.5"},
		{ActionType: "link_click", Value: "999"},
	}

	total, matched := SumMatchingValues(actions, domain.PurchaseActionTypes...)
	assert.Equal(t, 125.5, total)
	assert.Equal(t, 3, matched)

	total, matched = SumMatchingValues(nil, domain.PurchaseActionTypes...)
	assert.Zero(t, total)
	assert.Zero(t, matched)
}

func TestFirstValue(t *testing.T) {
	assert.Equal(t, 0.0, FirstValue(nil))
	assert.Equal(t, 4.5, FirstValue([]domain.Action{{ActionType: "video_view", Value: "4.5"}, {Value: "9"}}))
}
