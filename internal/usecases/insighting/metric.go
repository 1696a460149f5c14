package insighting

import (
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

// ParseMetric converte uma string numérica da Graph API em float64.
// Ausente, vazio ou inválido vira 0; NaN e infinito também.
func ParseMetric(raw string) float64 {
	value, _ := LookupMetric(raw)
	return value
}

// LookupMetric é ParseMetric informando se havia um número válido
func LookupMetric(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

// ParseCount converte contagens (impressões, cliques, alcance) truncando a parte decimal
func ParseCount(raw string) int64 {
	return int64(ParseMetric(raw))
}

// SingleMatchValue devolve o valor da primeira ação cujo tipo está em actionTypes.
// Usado no ROAS por linha.
func SingleMatchValue(actions []domain.Action, actionTypes ...string) (float64, bool) {
	for _, action := range actions {
		if matchesAny(action.ActionType, actionTypes) {
			return ParseMetric(action.Value), true
		}
	}

	return 0, false
}

// SumMatchingValues soma o valor de todas as ações cujo tipo está em actionTypes,
// sem parar na primeira ocorrência. Também devolve quantas ações casaram.
func SumMatchingValues(actions []domain.Action, actionTypes ...string) (float64, int) {
	var (
		total   float64
		matched int
	)

	for _, action := range actions {
		if matchesAny(action.ActionType, actionTypes) {
			total += ParseMetric(action.Value)
			matched++
		}
	}

	return total, matched
}

// FirstValue lê o primeiro elemento de uma lista de ações (métricas de vídeo)
func FirstValue(actions []domain.Action) float64 {
	if len(actions) == 0 {
		return 0
	}

	return ParseMetric(actions[0].Value)
}

func matchesAny(actionType string, actionTypes []string) bool {
	for _, t := range actionTypes {
		if actionType == t {
			return true
		}
	}

	return false
}

// safeDivide devolve 0 quando o divisor não é positivo
func safeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}

	return numerator / denominator
}
