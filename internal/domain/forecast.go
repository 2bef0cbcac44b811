package domain

import "time"

// Period identifica um mês-calendário alvo da previsão.
// Não precisa ser contíguo ao histórico observado.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Valid informa se o período representa um mês-calendário real.
func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// Next retorna o mês-calendário seguinte, virando o ano quando necessário.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// PeriodOf extrai o período mensal de um timestamp.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// ForecastPoint é uma previsão pontual de quantidade para um mês futuro.
type ForecastPoint struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Quantity float64 `json:"quantity"`
}

// ModelMetrics são as métricas de acurácia calculadas na partição de teste.
type ModelMetrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// ForecastResult agrega as previsões futuras e as métricas do modelo.
type ForecastResult struct {
	Points  []ForecastPoint `json:"points"`
	Metrics ModelMetrics    `json:"metrics"`
}
