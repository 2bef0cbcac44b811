// Package forecasting treina o modelo de regressão sobre a série mensal e
// extrapola a quantidade vendida para períodos futuros arbitrários.
package forecasting

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/pkg/utils"
)

// Configuração fixa do ajuste, espelhando o comportamento de referência:
// ensemble de 100 árvores, split aleatório 80/20 com semente fixa. Não há
// busca de hiperparâmetros nem validação cruzada; uma execução, um ajuste.
const (
	randomSeed   = 42
	testFraction = 0.2
	estimators   = 100
	learningRate = 0.1
	maxTreeDepth = 3
)

// DefaultMinPeriods é o piso de períodos mensais: com fração de teste 0.2,
// cinco períodos garantem teste não vazio e quatro amostras de treino.
const DefaultMinPeriods = 5

// Forecaster treina e extrapola a previsão de vendas mensais.
type Forecaster interface {
	TrainAndPredict(monthly domain.PeriodSeries, futurePeriods []domain.Period) (*domain.ForecastResult, error)
}

// Config controla as políticas abertas do motor; o ajuste em si é fixo.
type Config struct {
	// Mínimo de períodos mensais aceitos (piso em DefaultMinPeriods)
	MinPeriods int
	// Inserir meses interiores sem transação com quantidade zero antes do
	// treino. Desligado por padrão: meses ausentes não são observações.
	FillMissingPeriods bool
}

type Service struct {
	cfg Config
}

// NewService cria o motor de previsão
func NewService(cfg Config) Forecaster {
	if cfg.MinPeriods < DefaultMinPeriods {
		cfg.MinPeriods = DefaultMinPeriods
	}
	return &Service{cfg: cfg}
}

type sample struct {
	period   domain.Period
	quantity float64
}

// TrainAndPredict reinterpreta a série mensal como amostras (ano, mês) →
// quantidade, separa uma partição de teste com semente fixa, ajusta o
// ensemble na partição de treino, mede a acurácia no teste e extrapola para
// cada período futuro pedido. Duas execuções sobre a mesma série produzem
// exatamente o mesmo split, as mesmas previsões e as mesmas métricas.
func (s *Service) TrainAndPredict(monthly domain.PeriodSeries, futurePeriods []domain.Period) (*domain.ForecastResult, error) {
	for _, p := range futurePeriods {
		if !p.Valid() {
			return nil, ErrInvalidPeriod
		}
	}

	samples := samplesFromSeries(monthly)
	if s.cfg.FillMissingPeriods {
		samples = fillInteriorPeriods(samples)
	}

	if len(samples) < s.cfg.MinPeriods {
		return nil, &InsufficientHistoryError{
			Required: s.cfg.MinPeriods,
			Observed: len(samples),
		}
	}

	features := make([][]float64, len(samples))
	target := make([]float64, len(samples))
	for i, sm := range samples {
		features[i] = []float64{float64(sm.period.Year), float64(sm.period.Month)}
		target[i] = sm.quantity
	}

	trainIdx, testIdx := splitIndices(len(samples))

	model := fitGBRT(subset(features, trainIdx), subsetFloat(target, trainIdx), gbrtConfig{
		estimators:   estimators,
		learningRate: learningRate,
		maxDepth:     maxTreeDepth,
	})

	predicted := make([]float64, len(testIdx))
	actual := make([]float64, len(testIdx))
	for i, idx := range testIdx {
		predicted[i] = model.predict(features[idx])
		actual[i] = target[idx]
	}

	metrics := evaluate(actual, predicted)

	points := make([]domain.ForecastPoint, len(futurePeriods))
	for i, p := range futurePeriods {
		points[i] = domain.ForecastPoint{
			Year:  p.Year,
			Month: p.Month,
			// Duas casas bastam para quantidade prevista
			Quantity: utils.RoundWithTwoDecimalPlace(model.predict([]float64{float64(p.Year), float64(p.Month)})),
		}
	}

	logrus.WithFields(logrus.Fields{
		"train_samples":  len(trainIdx),
		"test_samples":   len(testIdx),
		"future_periods": len(futurePeriods),
	}).Debug("Modelo de previsão treinado e avaliado")

	return &domain.ForecastResult{Points: points, Metrics: metrics}, nil
}

// splitIndices embaralha os índices com a semente fixa e reserva os primeiros
// ⌈n·0.2⌉ para a partição de teste. O split é aleatório, não temporal: essa é
// a semântica herdada e preservada deliberadamente.
func splitIndices(n int) (train, test []int) {
	rng := rand.New(rand.NewSource(randomSeed))
	perm := rng.Perm(n)

	testCount := int(math.Ceil(float64(n) * testFraction))
	return perm[testCount:], perm[:testCount]
}

// evaluate calcula as métricas de acurácia na partição de teste. O RMSE é a
// raiz quadrada do MSE, calculada explicitamente.
func evaluate(actual, predicted []float64) domain.ModelMetrics {
	n := float64(len(actual))
	if n == 0 {
		return domain.ModelMetrics{}
	}

	var sse, sae float64
	for i := range actual {
		diff := actual[i] - predicted[i]
		sse += diff * diff
		sae += math.Abs(diff)
	}

	mse := sse / n
	return domain.ModelMetrics{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  sae / n,
		R2:   rSquared(actual, predicted),
	}
}

// rSquared é o coeficiente de determinação: 1 quando resíduo e variância
// total são ambos zero, 0 quando só a variância total é.
func rSquared(actual, predicted []float64) float64 {
	m := mean(actual)

	var ssRes, ssTot float64
	for i := range actual {
		res := actual[i] - predicted[i]
		tot := actual[i] - m
		ssRes += res * res
		ssTot += tot * tot
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}

	return 1 - ssRes/ssTot
}

// samplesFromSeries converte os buckets mensais em amostras (ano, mês) →
// quantidade, preservando a ordem ascendente da série.
func samplesFromSeries(monthly domain.PeriodSeries) []sample {
	samples := make([]sample, 0, len(monthly.Buckets))
	for _, bucket := range monthly.Buckets {
		samples = append(samples, sample{
			period:   domain.PeriodOf(bucket.PeriodEnd),
			quantity: float64(bucket.Quantity),
		})
	}
	return samples
}

// fillInteriorPeriods insere com quantidade zero os meses-calendário entre o
// primeiro e o último período observado que não têm transações.
func fillInteriorPeriods(samples []sample) []sample {
	if len(samples) < 2 {
		return samples
	}

	observed := make(map[domain.Period]float64, len(samples))
	for _, sm := range samples {
		observed[sm.period] = sm.quantity
	}

	filled := make([]sample, 0, len(samples))
	last := samples[len(samples)-1].period
	for p := samples[0].period; ; p = p.Next() {
		filled = append(filled, sample{period: p, quantity: observed[p]})
		if p == last {
			break
		}
	}

	return filled
}

func subset(values [][]float64, indices []int) [][]float64 {
	out := make([][]float64, len(indices))
	for i, idx := range indices {
		out[i] = values[idx]
	}
	return out
}

func subsetFloat(values []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		out[i] = values[idx]
	}
	return out
}
