package handler

import (
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics-api/pkg/apiErrors"
)

// Limite do corpo aceito no upload de exports (32 MB)
const maxUploadBytes = 32 << 20

// GetLatestReport retorna o último relatório gerado pelo pipeline
func GetLatestReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := service.LatestReport()
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNoReportAvailable, "Nenhum relatório foi gerado ainda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// AnalyzeUpload recebe um export CSV via multipart e executa o pipeline
// completo sobre ele, respondendo com o relatório resultante.
func AnalyzeUpload(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo 'file' não enviado", nil)
			return
		}
		defer file.Close()

		logrus.WithFields(logrus.Fields{
			"filename": header.Filename,
			"size":     header.Size,
		}).Info("Export recebido via upload")

		report, err := service.BuildReportFromReader(file, nil)
		if err != nil {
			handlePipelineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// handlePipelineError traduz os erros do pipeline para os códigos da API
func handlePipelineError(w http.ResponseWriter, err error) {
	var schemaErr *normalizing.SchemaError
	var historyErr *forecasting.InsufficientHistoryError

	switch {
	case errors.As(err, &schemaErr):
		apiErrors.WriteError(w, apiErrors.ErrSchemaViolation, schemaErr.Error(), map[string]any{
			"column": schemaErr.Column,
		})

	case errors.As(err, &historyErr):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientHistory, historyErr.Error(), map[string]any{
			"required": historyErr.Required,
			"observed": historyErr.Observed,
		})

	case errors.Is(err, forecasting.ErrInvalidPeriod):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período de previsão inválido", nil)

	case errors.Is(err, os.ErrNotExist):
		apiErrors.WriteError(w, apiErrors.ErrDatasetUnavailable, "Arquivo de dados não encontrado", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar o export de vendas", nil)
	}
}
