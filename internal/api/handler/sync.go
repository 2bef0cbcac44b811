package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/scheduler"
)

// TriggerReportSync dispara manualmente o reprocessamento do export
// configurado. A execução acontece em background; a resposta apenas confirma
// o disparo.
func TriggerReportSync(service *scheduler.ReportRefreshService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("Sincronização manual do relatório solicitada via API")

		service.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "sync started",
		})
	}
}

// GetReportSyncStatus retorna o status do agendador de atualização
func GetReportSyncStatus(service *scheduler.ReportRefreshService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.GetStatus())
	}
}
