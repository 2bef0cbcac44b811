package handler

import (
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics-api/pkg/apiErrors"
)

type ForecastRequest struct {
	// Meses-calendário alvo; vazio usa o padrão de meses à frente configurado
	Periods []domain.Period `json:"periods"`
}

// RunForecast treina novamente o motor sobre a série mensal da última execução
// do pipeline para os períodos informados pelo chamador.
func RunForecast(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForecastRequest

		// Corpo vazio é válido: cai no padrão de meses à frente do serviço
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.Forecast(req.Periods)
		if err != nil {
			if errors.Is(err, reporting.ErrNoReport) {
				apiErrors.WriteError(w, apiErrors.ErrNoReportAvailable, "Nenhum relatório foi gerado ainda", nil)
				return
			}
			handlePipelineError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}
