package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/insighting"
)

// Chaves de ordenação aceitas
const (
	SortByCTR         = "ctr"
	SortByCPC         = "cpc"
	SortByConversions = "conversions"
	SortByROAS        = "roas"
)

const (
	DefaultSortBy = SortByCTR
	DefaultLimit  = 10

	// linhas sem cpc numérico vão para o fim do ranking ascendente
	missingCPC = 999999
)

var ErrInvalidSortKey = errors.New("chave de ordenação inválida")

var sortKeys = map[string]bool{
	SortByCTR:         true,
	SortByCPC:         true,
	SortByConversions: true,
	SortByROAS:        true,
}

// IsValidSortKey verifica se a chave é suportada pelo ranking
func IsValidSortKey(sortBy string) bool {
	return sortKeys[sortBy]
}

// ROAS calcula o retorno da linha usando o primeiro valor de compra encontrado
func ROAS(row domain.InsightRow) float64 {
	spend := insighting.ParseMetric(row.Spend)
	if spend <= 0 {
		return 0
	}

	value, _ := insighting.SingleMatchValue(row.ActionValues, domain.RoasActionTypes...)
	return value / spend
}

// Conversions soma todas as ações de compra da linha
func Conversions(row domain.InsightRow) float64 {
	total, _ := insighting.SumMatchingValues(row.Actions, domain.PurchaseActionTypes...)
	return total
}

// Rank enriquece as linhas com roas e conversões, ordena de forma estável pela
// chave pedida e corta nas primeiras limit linhas.
func Rank(rows []domain.InsightRow, sortBy string, limit int) ([]domain.RankedRow, error) {
	if !IsValidSortKey(sortBy) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, sortBy)
	}

	ranked := make([]domain.RankedRow, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, domain.RankedRow{
			InsightRow:  row,
			ROAS:        ROAS(row),
			Conversions: Conversions(row),
		})
	}

	sort.SliceStable(ranked, less(ranked, sortBy))

	if limit < 0 {
		limit = 0
	}
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

func less(rows []domain.RankedRow, sortBy string) func(i, j int) bool {
	switch sortBy {
	case SortByCTR:
		return func(i, j int) bool {
			return insighting.ParseMetric(rows[i].CTR) > insighting.ParseMetric(rows[j].CTR)
		}
	case SortByCPC:
		return func(i, j int) bool {
			return cpcOf(rows[i].InsightRow) < cpcOf(rows[j].InsightRow)
		}
	case SortByConversions:
		return func(i, j int) bool {
			return rows[i].Conversions > rows[j].Conversions
		}
	default:
		return func(i, j int) bool {
			return rows[i].ROAS > rows[j].ROAS
		}
	}
}

func cpcOf(row domain.InsightRow) float64 {
	cpc, ok := insighting.LookupMetric(row.CPC)
	if !ok {
		return missingCPC
	}

	return cpc
}
