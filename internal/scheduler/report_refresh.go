// Package scheduler contém o serviço de agendamento que reprocessa o export
// de vendas configurado e renova o relatório em memória.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/reporting"
)

type ReportRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
	DatasetPath  string
}

type ReportRefreshService struct {
	scheduler           *gocron.Scheduler
	reporter            reporting.Reporter
	config              ReportRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewReportRefreshService(
	reporter reporting.Reporter,
	cfg *config.Config,
) *ReportRefreshService {
	refreshConfig := ReportRefreshConfig{
		CronSchedule: cfg.ReportSync.CronSchedule, // Default: 5h da manhã todos os dias
		SyncEnabled:  cfg.ReportSync.Enabled,      // Default: desabilitado
		DatasetPath:  cfg.Dataset.Path,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"dataset_path":  refreshConfig.DatasetPath,
	}).Info("Configuração do agendador de atualização do relatório carregada")

	return &ReportRefreshService{
		scheduler: scheduler,
		reporter:  reporter,
		config:    refreshConfig,
	}
}

func (s *ReportRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do relatório desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do relatório de vendas")

	// Agendar o reprocessamento do export configurado
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshReport(); err != nil {
			logrus.WithError(err).Error("Erro na atualização do relatório de vendas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do relatório de vendas: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de atualização do relatório")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshReport reexecuta o pipeline completo sobre o export configurado.
// Uma chamada que encontra outra em andamento retorna sem reprocessar; o
// mutex protege apenas o estado de execução, não a execução em si.
func (s *ReportRefreshService) RefreshReport() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do relatório de vendas já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.WithField("dataset_path", s.config.DatasetPath).Info("Iniciando atualização do relatório de vendas")

	report, err := s.reporter.BuildReportFromPath(s.config.DatasetPath, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao reprocessar o export de vendas")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":     report.RunID,
		"total_rows": report.TotalRows,
	}).Info("Atualização do relatório de vendas concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma atualização do relatório
func (s *ReportRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do relatório de vendas")
	go func() {
		if err := s.RefreshReport(); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do relatório de vendas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *ReportRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
