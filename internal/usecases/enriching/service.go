// Package enriching deriva as colunas calculadas da tabela limpa (total da
// linha, ano e mês) e projeta a tabela em registros tipados do domínio.
package enriching

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/normalizing"
)

// Deriver calcula as colunas derivadas e materializa os registros de venda.
type Deriver interface {
	Derive(df dataframe.DataFrame) (dataframe.DataFrame, error)
	Project(df dataframe.DataFrame) ([]domain.SalesRecord, error)
}

type Service struct{}

// NewService cria o serviço de derivação de features
func NewService() Deriver {
	return &Service{}
}

// Derive adiciona o total da linha (quantidade × subtotal com desconto) e as
// colunas de ano e mês extraídas do timestamp. Quantidade ou subtotal ausentes
// ou não numéricos após a normalização violam o contrato de schema e são
// erro fatal; linhas sem timestamp recebem ano e mês ausentes.
func (s *Service) Derive(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := normalizing.RequireColumns(df,
		domain.ColumnQuantity,
		domain.ColumnSubtotal,
		domain.ColumnCreatedTime,
	); err != nil {
		return df, err
	}

	quantities, err := intColumn(df, domain.ColumnQuantity)
	if err != nil {
		return df, err
	}

	subtotals, err := intColumn(df, domain.ColumnSubtotal)
	if err != nil {
		return df, err
	}

	totals := make([]int, len(quantities))
	for i := range quantities {
		totals[i] = quantities[i] * subtotals[i]
	}

	df = df.Mutate(series.New(totals, series.Int, domain.ColumnLineTotal))
	if df.Err != nil {
		return df, df.Err
	}

	years, months := calendarColumns(df.Col(domain.ColumnCreatedTime).Records())
	df = df.Mutate(series.New(years, series.Int, domain.ColumnYear))
	if df.Err != nil {
		return df, df.Err
	}

	df = df.Mutate(series.New(months, series.Int, domain.ColumnMonth))
	return df, df.Err
}

// Project materializa a tabela enriquecida em registros tipados. Linhas sem
// timestamp são mantidas com HasTimestamp=false; a exclusão delas é decisão
// das agregações temporais, não da projeção.
func (s *Service) Project(df dataframe.DataFrame) ([]domain.SalesRecord, error) {
	if err := normalizing.RequireColumns(df,
		domain.ColumnProductName,
		domain.ColumnCategory,
		domain.ColumnPaymentMethod,
		domain.ColumnLineTotal,
	); err != nil {
		return nil, err
	}

	quantities, err := intColumn(df, domain.ColumnQuantity)
	if err != nil {
		return nil, err
	}

	subtotals, err := intColumn(df, domain.ColumnSubtotal)
	if err != nil {
		return nil, err
	}

	totals, err := intColumn(df, domain.ColumnLineTotal)
	if err != nil {
		return nil, err
	}

	names := df.Col(domain.ColumnProductName).Records()
	categories := df.Col(domain.ColumnCategory).Records()
	payments := df.Col(domain.ColumnPaymentMethod).Records()
	timestamps := df.Col(domain.ColumnCreatedTime).Records()

	records := make([]domain.SalesRecord, df.Nrow())
	for i := range records {
		record := domain.SalesRecord{
			ProductName:   names[i],
			Category:      categories[i],
			PaymentMethod: payments[i],
			Quantity:      quantities[i],
			Subtotal:      subtotals[i],
			LineTotal:     totals[i],
		}

		if t, ok := normalizing.ParseTimestamp(timestamps[i]); ok {
			record.CreatedAt = t
			record.HasTimestamp = true
			record.Year = t.Year()
			record.Month = int(t.Month())
		}

		records[i] = record
	}

	return records, nil
}

// intColumn devolve a coluna como inteiros, exigindo que a normalização a
// tenha convertido. Uma coluna obrigatória que permaneceu textual é violação
// de schema, não um valor malformado.
func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	col := df.Col(name)
	if col.Type() != series.Int {
		return nil, normalizing.NewSchemaError(normalizing.ErrColumnNotNumeric, name)
	}

	return col.Int()
}

// calendarColumns extrai ano e mês dos timestamps canônicos; valores ausentes
// viram NaN, que a série inteira representa como ausência.
func calendarColumns(timestamps []string) ([]string, []string) {
	years := make([]string, len(timestamps))
	months := make([]string, len(timestamps))

	for i, raw := range timestamps {
		t, ok := normalizing.ParseTimestamp(raw)
		if !ok {
			years[i] = "NaN"
			months[i] = "NaN"
			continue
		}
		years[i] = strconv.Itoa(t.Year())
		months[i] = strconv.Itoa(int(t.Month()))
	}

	return years, months
}
