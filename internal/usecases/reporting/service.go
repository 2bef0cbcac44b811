// Package reporting orquestra o pipeline completo — carga, normalização,
// derivação, agregação e previsão — e mantém em memória o último relatório
// gerado para consumo da camada de apresentação.
package reporting

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/enriching"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-analytics-api/pkg/utils"
)

// ErrNoReport indica que nenhuma execução do pipeline foi concluída ainda.
var ErrNoReport = errors.New("no report has been generated yet")

// Quantos produtos aparecem no ranking de tendência
const topTrendItems = 5

// Reporter executa o pipeline e expõe o último relatório gerado.
type Reporter interface {
	BuildReportFromPath(path string, futurePeriods []domain.Period) (*domain.SalesReport, error)
	BuildReportFromReader(r io.Reader, futurePeriods []domain.Period) (*domain.SalesReport, error)
	LatestReport() (*domain.SalesReport, bool)
	Forecast(futurePeriods []domain.Period) (*domain.ForecastResult, error)
}

// Config controla os padrões do relatório
type Config struct {
	// Meses à frente previstos quando o chamador não informa períodos
	FutureMonths int
}

type Service struct {
	normalizer normalizing.Normalizer
	deriver    enriching.Deriver
	aggregator aggregating.Aggregator
	forecaster forecasting.Forecaster
	cfg        Config

	// Cache em memória da última execução; nada é persistido entre execuções
	mu            sync.Mutex
	latest        *domain.SalesReport
	latestMonthly domain.PeriodSeries
}

// NewService cria o serviço de relatórios
func NewService(
	normalizer normalizing.Normalizer,
	deriver enriching.Deriver,
	aggregator aggregating.Aggregator,
	forecaster forecasting.Forecaster,
	cfg Config,
) *Service {
	if cfg.FutureMonths <= 0 {
		cfg.FutureMonths = 2 // Comportamento de referência: dois meses à frente
	}

	return &Service{
		normalizer: normalizer,
		deriver:    deriver,
		aggregator: aggregator,
		forecaster: forecaster,
		cfg:        cfg,
	}
}

// BuildReportFromPath executa o pipeline sobre o export no caminho informado.
func (s *Service) BuildReportFromPath(path string, futurePeriods []domain.Period) (*domain.SalesReport, error) {
	df, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	return s.buildReport(df, futurePeriods)
}

// BuildReportFromReader executa o pipeline sobre um export recebido via
// upload. O reader é consumido integralmente antes de qualquer processamento.
func (s *Service) BuildReportFromReader(r io.Reader, futurePeriods []domain.Period) (*domain.SalesReport, error) {
	df, err := dataset.Read(r)
	if err != nil {
		return nil, err
	}

	return s.buildReport(df, futurePeriods)
}

// LatestReport retorna o último relatório gerado, quando existe.
func (s *Service) LatestReport() (*domain.SalesReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return nil, false
	}
	return s.latest, true
}

// Forecast treina novamente o motor sobre a série mensal da última execução
// para um conjunto de períodos escolhido pelo chamador. Os períodos não
// precisam ser contíguos ao histórico.
func (s *Service) Forecast(futurePeriods []domain.Period) (*domain.ForecastResult, error) {
	s.mu.Lock()
	monthly := s.latestMonthly
	hasReport := s.latest != nil
	s.mu.Unlock()

	if !hasReport {
		return nil, ErrNoReport
	}

	if len(futurePeriods) == 0 {
		futurePeriods = defaultFuturePeriods(monthly, s.cfg.FutureMonths)
	}

	return s.forecaster.TrainAndPredict(monthly, futurePeriods)
}

// buildReport encadeia as etapas do pipeline, cada uma função pura da saída
// da anterior, e publica o resultado no cache.
func (s *Service) buildReport(df dataframe.DataFrame, futurePeriods []domain.Period) (*domain.SalesReport, error) {
	clean, err := s.normalizer.Normalize(df)
	if err != nil {
		return nil, err
	}

	featured, err := s.deriver.Derive(clean)
	if err != nil {
		return nil, err
	}

	records, err := s.deriver.Project(featured)
	if err != nil {
		return nil, err
	}

	monthly := s.aggregator.SeriesByGranularity(records, domain.GranularityMonth)

	if len(futurePeriods) == 0 {
		futurePeriods = defaultFuturePeriods(monthly, s.cfg.FutureMonths)
	}

	forecast, err := s.forecaster.TrainAndPredict(monthly, futurePeriods)
	if err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	rowsWithTime := 0
	for _, record := range records {
		if record.HasTimestamp {
			rowsWithTime++
		}
	}

	report := &domain.SalesReport{
		RunID:       runID,
		GeneratedAt: time.Now(),

		TotalRows:     len(records),
		RowsWithTime:  rowsWithTime,
		TotalQuantity: s.aggregator.TotalQuantity(records),
		TotalRevenue:  s.aggregator.TotalRevenue(records),

		ItemQuantityRanking: s.aggregator.ItemQuantityRanking(records),
		TopItemsByFrequency: s.aggregator.TopItemsByFrequency(records, topTrendItems),
		CategoryRevenue:     s.aggregator.CategoryRevenueRanking(records),
		PaymentMethodCounts: s.aggregator.PaymentMethodCounts(records),

		DailySeries:   s.aggregator.SeriesByGranularity(records, domain.GranularityDay),
		WeeklySeries:  s.aggregator.SeriesByGranularity(records, domain.GranularityWeek),
		MonthlySeries: monthly,

		Forecast: forecast,
	}

	s.mu.Lock()
	s.latest = report
	s.latestMonthly = monthly
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":         report.RunID,
		"total_rows":     report.TotalRows,
		"rows_with_time": report.RowsWithTime,
		"monthly_buckets": len(monthly.Buckets),
	}).Info("Relatório de vendas gerado com sucesso")

	return report, nil
}

// defaultFuturePeriods devolve os meses-calendário seguintes ao último mês
// observado, virando o ano quando necessário. Série vazia não tem "próximo
// mês"; o motor de previsão rejeita a série antes disso importar.
func defaultFuturePeriods(monthly domain.PeriodSeries, months int) []domain.Period {
	if len(monthly.Buckets) == 0 {
		return nil
	}

	periods := make([]domain.Period, 0, months)
	p := domain.PeriodOf(monthly.Buckets[len(monthly.Buckets)-1].PeriodEnd)
	for i := 0; i < months; i++ {
		p = p.Next()
		periods = append(periods, p)
	}

	return periods
}
