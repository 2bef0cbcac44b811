package forecasting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

func monthlySeries(quantities map[domain.Period]int) domain.PeriodSeries {
	periods := make([]domain.Period, 0, len(quantities))
	for p := range quantities {
		periods = append(periods, p)
	}

	// Ordena por (ano, mês) para espelhar a série real
	for i := 1; i < len(periods); i++ {
		for j := i; j > 0; j-- {
			a, b := periods[j-1], periods[j]
			if a.Year < b.Year || (a.Year == b.Year && a.Month < b.Month) {
				break
			}
			periods[j-1], periods[j] = b, a
		}
	}

	buckets := make([]domain.PeriodBucket, 0, len(periods))
	for _, p := range periods {
		end := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
		buckets = append(buckets, domain.PeriodBucket{PeriodEnd: end, Quantity: quantities[p]})
	}

	return domain.PeriodSeries{Granularity: domain.GranularityMonth, Buckets: buckets}
}

func sixMonthsOf2024(q1, q2, q3, q4, q5, q6 int) domain.PeriodSeries {
	return monthlySeries(map[domain.Period]int{
		{Year: 2024, Month: 1}: q1,
		{Year: 2024, Month: 2}: q2,
		{Year: 2024, Month: 3}: q3,
		{Year: 2024, Month: 4}: q4,
		{Year: 2024, Month: 5}: q5,
		{Year: 2024, Month: 6}: q6,
	})
}

func TestService_TrainAndPredict_InsufficientHistory(t *testing.T) {
	service := NewService(Config{})

	series := monthlySeries(map[domain.Period]int{
		{Year: 2024, Month: 1}: 10,
		{Year: 2024, Month: 2}: 12,
		{Year: 2024, Month: 3}: 9,
		{Year: 2024, Month: 4}: 14,
	})

	_, err := service.TrainAndPredict(series, []domain.Period{{Year: 2024, Month: 5}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	var historyErr *InsufficientHistoryError
	require.ErrorAs(t, err, &historyErr)
	assert.Equal(t, DefaultMinPeriods, historyErr.Required)
	assert.Equal(t, 4, historyErr.Observed)
}

func TestService_TrainAndPredict_InvalidPeriod(t *testing.T) {
	service := NewService(Config{})
	series := sixMonthsOf2024(10, 12, 9, 14, 11, 13)

	_, err := service.TrainAndPredict(series, []domain.Period{{Year: 2024, Month: 13}})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = service.TrainAndPredict(series, []domain.Period{{Year: 0, Month: 1}})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestService_TrainAndPredict_Deterministic(t *testing.T) {
	service := NewService(Config{})
	series := sixMonthsOf2024(10, 12, 9, 14, 11, 13)
	future := []domain.Period{
		{Year: 2024, Month: 7},
		{Year: 2024, Month: 8},
	}

	first, err := service.TrainAndPredict(series, future)
	require.NoError(t, err)

	second, err := service.TrainAndPredict(series, future)
	require.NoError(t, err)

	// Duas execuções sobre a mesma série são bit a bit idênticas
	assert.Equal(t, first, second)
}

func TestService_TrainAndPredict_ConstantSeries(t *testing.T) {
	service := NewService(Config{})
	series := sixMonthsOf2024(10, 10, 10, 10, 10, 10)

	result, err := service.TrainAndPredict(series, []domain.Period{
		{Year: 2024, Month: 7},
		{Year: 2025, Month: 1},
	})
	require.NoError(t, err)

	// Série constante: o modelo reduz à média e acerta tudo
	require.Len(t, result.Points, 2)
	assert.InDelta(t, 10.0, result.Points[0].Quantity, 1e-9)
	assert.InDelta(t, 10.0, result.Points[1].Quantity, 1e-9)

	assert.Zero(t, result.Metrics.MSE)
	assert.Zero(t, result.Metrics.RMSE)
	assert.Zero(t, result.Metrics.MAE)
	assert.Equal(t, 1.0, result.Metrics.R2)
}

func TestService_TrainAndPredict_ArbitraryFuturePeriods(t *testing.T) {
	service := NewService(Config{})
	series := sixMonthsOf2024(10, 12, 9, 14, 11, 13)

	// Períodos futuros não precisam ser contíguos ao histórico
	result, err := service.TrainAndPredict(series, []domain.Period{
		{Year: 2026, Month: 3},
		{Year: 2024, Month: 12},
	})
	require.NoError(t, err)

	require.Len(t, result.Points, 2)
	assert.Equal(t, 2026, result.Points[0].Year)
	assert.Equal(t, 3, result.Points[0].Month)
	assert.Equal(t, 2024, result.Points[1].Year)
	assert.Equal(t, 12, result.Points[1].Month)
}

func TestService_TrainAndPredict_FillMissingPeriods(t *testing.T) {
	// Quatro meses observados em seis meses-calendário: só passa do piso de
	// cinco períodos com o preenchimento de lacunas ligado
	series := monthlySeries(map[domain.Period]int{
		{Year: 2024, Month: 1}: 10,
		{Year: 2024, Month: 2}: 12,
		{Year: 2024, Month: 5}: 14,
		{Year: 2024, Month: 6}: 11,
	})
	future := []domain.Period{{Year: 2024, Month: 7}}

	_, err := NewService(Config{}).TrainAndPredict(series, future)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	result, err := NewService(Config{FillMissingPeriods: true}).TrainAndPredict(series, future)
	require.NoError(t, err)
	assert.Len(t, result.Points, 1)
}

func TestSplitIndices(t *testing.T) {
	train, test := splitIndices(6)

	// ⌈6·0.2⌉ = 2 amostras de teste
	assert.Len(t, test, 2)
	assert.Len(t, train, 4)

	seen := make(map[int]bool)
	for _, idx := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[idx], "índice repetido no split")
		seen[idx] = true
	}
	assert.Len(t, seen, 6)

	// Mesma semente, mesmo split
	train2, test2 := splitIndices(6)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)
}

func TestEvaluate(t *testing.T) {
	metrics := evaluate([]float64{2, 4}, []float64{3, 3})

	assert.InDelta(t, 1.0, metrics.MSE, 1e-9)
	assert.InDelta(t, 1.0, metrics.RMSE, 1e-9)
	assert.InDelta(t, 1.0, metrics.MAE, 1e-9)
	// ssRes = 2, ssTot = 2
	assert.InDelta(t, 0.0, metrics.R2, 1e-9)
}

func TestRSquared_Edges(t *testing.T) {
	// Alvo constante e previsão exata: 1
	assert.Equal(t, 1.0, rSquared([]float64{5, 5}, []float64{5, 5}))
	// Alvo constante e previsão errada: 0
	assert.Equal(t, 0.0, rSquared([]float64{5, 5}, []float64{4, 6}))
}

func TestFillInteriorPeriods(t *testing.T) {
	samples := []sample{
		{period: domain.Period{Year: 2024, Month: 11}, quantity: 3},
		{period: domain.Period{Year: 2025, Month: 2}, quantity: 7},
	}

	filled := fillInteriorPeriods(samples)

	require.Len(t, filled, 4)
	assert.Equal(t, domain.Period{Year: 2024, Month: 12}, filled[1].period)
	assert.Zero(t, filled[1].quantity)
	assert.Equal(t, domain.Period{Year: 2025, Month: 1}, filled[2].period)
	assert.Zero(t, filled[2].quantity)
	assert.Equal(t, 7.0, filled[3].quantity)
}
