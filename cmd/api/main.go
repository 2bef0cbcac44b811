package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/api"
	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/scheduler"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/enriching"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authenticator := authenticating.NewService(cfg)

	// Monta o pipeline de análise: normalização, derivação, agregação e previsão
	normalizer := normalizing.NewService()
	deriver := enriching.NewService()
	aggregator := aggregating.NewService()
	forecaster := forecasting.NewService(forecasting.Config{
		MinPeriods:         cfg.Forecast.MinPeriods,
		FillMissingPeriods: cfg.Forecast.FillMissingPeriods,
	})

	reportService := reporting.NewService(
		normalizer,
		deriver,
		aggregator,
		forecaster,
		reporting.Config{FutureMonths: cfg.Forecast.FutureMonths},
	)

	// Inicializa o agendador que reprocessa o export configurado
	reportSyncService := scheduler.NewReportRefreshService(reportService, cfg)

	if err := reportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do relatório")
	} else {
		logrus.Info("Agendador de atualização do relatório iniciado com sucesso")
	}

	// Processa o export configurado na subida, quando existir, para a API já
	// responder com um relatório antes da primeira execução agendada
	if cfg.Dataset.Path != "" {
		if _, err := reportService.BuildReportFromPath(cfg.Dataset.Path, nil); err != nil {
			logrus.WithError(err).Warn("Não foi possível gerar o relatório inicial")
		}
	}

	server, err := api.New(
		cfg,
		reportService,
		authenticator,
		reportSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
