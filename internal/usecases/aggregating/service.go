// Package aggregating agrupa os registros de venda em séries temporais por
// granularidade e em rankings categóricos (item, categoria, pagamento).
package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/pkg/utils"
)

// Aggregator produz os agregados consumidos pelo relatório de vendas.
type Aggregator interface {
	SeriesByGranularity(records []domain.SalesRecord, granularity domain.Granularity) domain.PeriodSeries
	ItemQuantityRanking(records []domain.SalesRecord) []domain.RankingEntry
	TopItemsByFrequency(records []domain.SalesRecord, n int) []domain.RankingEntry
	CategoryRevenueRanking(records []domain.SalesRecord) []domain.RankingEntry
	PaymentMethodCounts(records []domain.SalesRecord) []domain.RankingEntry
	TotalRevenue(records []domain.SalesRecord) int
	TotalQuantity(records []domain.SalesRecord) int
}

type Service struct{}

// NewService cria o serviço de agregação
func NewService() Aggregator {
	return &Service{}
}

// SeriesByGranularity soma a quantidade vendida por período-calendário.
// Linhas sem timestamp ficam fora de qualquer granularidade; períodos sem
// transação simplesmente não aparecem (sem preenchimento de lacunas).
func (s *Service) SeriesByGranularity(records []domain.SalesRecord, granularity domain.Granularity) domain.PeriodSeries {
	totals := make(map[time.Time]int)

	for _, record := range records {
		if !record.HasTimestamp {
			continue
		}
		totals[periodEnd(record.CreatedAt, granularity)] += record.Quantity
	}

	buckets := make([]domain.PeriodBucket, 0, len(totals))
	for end, quantity := range totals {
		buckets = append(buckets, domain.PeriodBucket{PeriodEnd: end, Quantity: quantity})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].PeriodEnd.Before(buckets[j].PeriodEnd)
	})

	return domain.PeriodSeries{Granularity: granularity, Buckets: buckets}
}

// ItemQuantityRanking soma a quantidade vendida por nome de produto, em ordem
// descendente. Inclui linhas sem timestamp: agregados não temporais contam
// todas as linhas.
func (s *Service) ItemQuantityRanking(records []domain.SalesRecord) []domain.RankingEntry {
	totals := make(map[string]int)
	for _, record := range records {
		totals[record.ProductName] += record.Quantity
	}
	return descendingRanking(totals)
}

// TopItemsByFrequency retorna os n produtos com mais linhas de pedido.
// O ranking de tendência usa frequência de linhas, não quantidade somada.
func (s *Service) TopItemsByFrequency(records []domain.SalesRecord, n int) []domain.RankingEntry {
	counts := make(map[string]int)
	for _, record := range records {
		counts[record.ProductName]++
	}

	ranking := descendingRanking(counts)
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// CategoryRevenueRanking soma o subtotal com desconto por categoria de
// produto, em ordem descendente.
func (s *Service) CategoryRevenueRanking(records []domain.SalesRecord) []domain.RankingEntry {
	totals := make(map[string]int)
	for _, record := range records {
		totals[record.Category] += record.Subtotal
	}
	return descendingRanking(totals)
}

// PaymentMethodCounts conta as linhas de pedido por método de pagamento.
func (s *Service) PaymentMethodCounts(records []domain.SalesRecord) []domain.RankingEntry {
	counts := make(map[string]int)
	for _, record := range records {
		counts[record.PaymentMethod]++
	}
	return descendingRanking(counts)
}

// TotalRevenue soma o total de cada linha (quantidade × subtotal com desconto).
func (s *Service) TotalRevenue(records []domain.SalesRecord) int {
	total := 0
	for _, record := range records {
		total += record.LineTotal
	}
	return total
}

// TotalQuantity soma a quantidade vendida de todas as linhas.
func (s *Service) TotalQuantity(records []domain.SalesRecord) int {
	total := 0
	for _, record := range records {
		total += record.Quantity
	}
	return total
}

// periodEnd calcula o timestamp canônico do fim do período da granularidade:
// o próprio dia, o domingo que fecha a semana ou o último dia do mês.
func periodEnd(t time.Time, granularity domain.Granularity) time.Time {
	switch granularity {
	case domain.GranularityWeek:
		return utils.EndOfWeek(t)
	case domain.GranularityMonth:
		return utils.EndOfMonth(t)
	default:
		return utils.StartOfDay(t)
	}
}

// descendingRanking ordena um mapa de totais em ordem descendente de valor,
// com desempate alfabético para manter a saída determinística.
func descendingRanking(totals map[string]int) []domain.RankingEntry {
	ranking := make([]domain.RankingEntry, 0, len(totals))
	for name, value := range totals {
		ranking = append(ranking, domain.RankingEntry{Name: name, Value: value})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Value != ranking[j].Value {
			return ranking[i].Value > ranking[j].Value
		}
		return ranking[i].Name < ranking[j].Name
	})

	return ranking
}
