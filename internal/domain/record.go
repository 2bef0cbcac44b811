package domain

import "time"

// Nomes das colunas obrigatórias do export de vendas, como chegam no CSV
const (
	ColumnQuantity      = "Quantity"
	ColumnSubtotal      = "SKU Subtotal After Discount"
	ColumnCreatedTime   = "Created Time"
	ColumnProductName   = "Product Name"
	ColumnCategory      = "Product Category"
	ColumnPaymentMethod = "Payment Method"
)

// Colunas derivadas pelo pipeline
const (
	ColumnLineTotal = "Total Price"
	ColumnYear      = "Year"
	ColumnMonth     = "Month"
)

// SalesRecord é uma linha do export já normalizada e enriquecida.
// Valores monetários são inteiros (IDR não tem subunidade em uso).
type SalesRecord struct {
	ProductName   string    `json:"product_name"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	Quantity      int       `json:"quantity"`
	Subtotal      int       `json:"subtotal"`
	LineTotal     int       `json:"line_total"`
	CreatedAt     time.Time `json:"created_at"`
	HasTimestamp  bool      `json:"has_timestamp"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
}
