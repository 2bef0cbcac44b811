package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/sales-analytics-api/pkg/apiErrors"
)

func decodeAPIError(t *testing.T, body *bytes.Buffer) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(body.Bytes(), &apiErr))
	return apiErr
}

func TestGetLatestReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Sem relatório responde 404 com o código de relatório", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().LatestReport().Return(nil, false)

		rec := httptest.NewRecorder()
		GetLatestReport(reporter)(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/latest", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNoReportAvailable, decodeAPIError(t, rec.Body).Code)
	})

	t.Run("Com relatório responde o relatório completo", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().LatestReport().Return(&domain.SalesReport{RunID: "run-1", TotalRows: 6}, true)

		rec := httptest.NewRecorder()
		GetLatestReport(reporter)(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/latest", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var report domain.SalesReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "run-1", report.RunID)
		assert.Equal(t, 6, report.TotalRows)
	})
}

func TestAnalyzeUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	multipartBody := func(t *testing.T, field, content string) (*bytes.Buffer, string) {
		t.Helper()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile(field, "sales.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		return body, writer.FormDataContentType()
	}

	t.Run("Upload válido executa o pipeline e devolve o relatório", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().
			BuildReportFromReader(gomock.Any(), nil).
			Return(&domain.SalesReport{RunID: "run-2"}, nil)

		body, contentType := multipartBody(t, "file", "Product Name,Quantity\n")
		req := httptest.NewRequest(http.MethodPost, "/v1/reports/analyze", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		AnalyzeUpload(reporter)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var report domain.SalesReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "run-2", report.RunID)
	})

	t.Run("Sem o campo de arquivo responde 400", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)

		body, contentType := multipartBody(t, "outro", "qualquer coisa")
		req := httptest.NewRequest(http.MethodPost, "/v1/reports/analyze", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		AnalyzeUpload(reporter)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec.Body).Code)
	})

	t.Run("Violação de schema responde 422 com a coluna", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().
			BuildReportFromReader(gomock.Any(), nil).
			Return(nil, normalizing.NewSchemaError(normalizing.ErrMissingColumn, domain.ColumnCreatedTime))

		body, contentType := multipartBody(t, "file", "Product Name,Quantity\n")
		req := httptest.NewRequest(http.MethodPost, "/v1/reports/analyze", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		AnalyzeUpload(reporter)(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrSchemaViolation, decodeAPIError(t, rec.Body).Code)
	})
}

func TestRunForecast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Períodos informados chegam ao serviço e o resultado volta intacto", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().
			Forecast([]domain.Period{{Year: 2024, Month: 8}}).
			Return(&domain.ForecastResult{
				Points: []domain.ForecastPoint{{Year: 2024, Month: 8, Quantity: 12.5}},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/reports/forecast",
			strings.NewReader(`{"periods":[{"year":2024,"month":8}]}`))

		rec := httptest.NewRecorder()
		RunForecast(reporter)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result domain.ForecastResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.Points, 1)
		assert.Equal(t, 12.5, result.Points[0].Quantity)
	})

	t.Run("Corpo vazio usa os períodos padrão do serviço", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().
			Forecast(gomock.Nil()).
			Return(&domain.ForecastResult{
				Points: []domain.ForecastPoint{
					{Year: 2024, Month: 7, Quantity: 9},
					{Year: 2024, Month: 8, Quantity: 11},
				},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/reports/forecast", strings.NewReader(""))

		rec := httptest.NewRecorder()
		RunForecast(reporter)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result domain.ForecastResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Len(t, result.Points, 2)
	})

	t.Run("Corpo inválido responde 400", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)

		req := httptest.NewRequest(http.MethodPost, "/v1/reports/forecast", strings.NewReader("{"))

		rec := httptest.NewRecorder()
		RunForecast(reporter)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Sem relatório anterior responde 404", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().Forecast(gomock.Nil()).Return(nil, reporting.ErrNoReport)

		req := httptest.NewRequest(http.MethodPost, "/v1/reports/forecast", strings.NewReader(`{}`))

		rec := httptest.NewRecorder()
		RunForecast(reporter)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNoReportAvailable, decodeAPIError(t, rec.Body).Code)
	})

	t.Run("Histórico curto responde 422 com os períodos exigidos", func(t *testing.T) {
		reporter := mocks.NewMockReporter(ctrl)
		reporter.EXPECT().
			Forecast(gomock.Any()).
			Return(nil, &forecasting.InsufficientHistoryError{Required: 5, Observed: 3})

		req := httptest.NewRequest(http.MethodPost, "/v1/reports/forecast",
			strings.NewReader(`{"periods":[{"year":2024,"month":8}]}`))

		rec := httptest.NewRecorder()
		RunForecast(reporter)(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientHistory, decodeAPIError(t, rec.Body).Code)
	})
}
