package domain

import "time"

// RankingEntry é uma posição de um ranking categórico (item, categoria ou
// método de pagamento), sempre ordenado de forma descendente pelo valor.
type RankingEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SalesReport é a saída completa de uma execução do pipeline. Todos os campos
// são recalculados a cada execução; nada é persistido entre execuções.
type SalesReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalRows      int `json:"total_rows"`
	RowsWithTime   int `json:"rows_with_time"`
	TotalQuantity  int `json:"total_quantity"`
	TotalRevenue   int `json:"total_revenue"`

	ItemQuantityRanking  []RankingEntry `json:"item_quantity_ranking"`
	TopItemsByFrequency  []RankingEntry `json:"top_items_by_frequency"`
	CategoryRevenue      []RankingEntry `json:"category_revenue"`
	PaymentMethodCounts  []RankingEntry `json:"payment_method_counts"`

	DailySeries   PeriodSeries `json:"daily_series"`
	WeeklySeries  PeriodSeries `json:"weekly_series"`
	MonthlySeries PeriodSeries `json:"monthly_series"`

	Forecast *ForecastResult `json:"forecast,omitempty"`
}
