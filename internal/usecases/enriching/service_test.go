package enriching

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/normalizing"
)

// cleanFrame monta uma tabela já normalizada a partir de um CSV bruto
func cleanFrame(t *testing.T, csv string) dataframe.DataFrame {
	t.Helper()

	df := dataframe.ReadCSV(strings.NewReader(csv),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	require.NoError(t, df.Err)

	clean, err := normalizing.NewService().Normalize(df)
	require.NoError(t, err)
	return clean
}

const exportCSV = "Product Name,Product Category,Payment Method,Quantity,SKU Subtotal After Discount,Created Time\n" +
	"Chapéu Panamá,Acessórios,Cartão,2,IDR1.000,2024-01-05 10:00:00\n" +
	"Óculos de Sol,Acessórios,Pix,3,IDR2.000,2024-01-20 15:30:00\n" +
	"Boné Trucker,Chapelaria,Cartão,1,IDR500,sem data\n"

func TestService_Derive(t *testing.T) {
	service := NewService()

	df, err := service.Derive(cleanFrame(t, exportCSV))
	require.NoError(t, err)

	totals, err := df.Col(domain.ColumnLineTotal).Int()
	require.NoError(t, err)
	assert.Equal(t, []int{2000, 6000, 500}, totals)

	// Linhas sem timestamp ficam com ano e mês ausentes
	assert.Equal(t, []string{"2024", "2024", "NaN"}, df.Col(domain.ColumnYear).Records())
	assert.Equal(t, []string{"1", "1", "NaN"}, df.Col(domain.ColumnMonth).Records())
}

func TestService_Derive_SchemaViolations(t *testing.T) {
	service := NewService()

	tests := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{
			name: "Coluna de quantidade ausente",
			csv: "Product Name,SKU Subtotal After Discount,Created Time\n" +
				"Chapéu Panamá,IDR100,2024-01-05 10:00:00\n",
			wantErr: normalizing.ErrMissingColumn,
		},
		{
			name: "Coluna de quantidade permaneceu textual após a normalização",
			csv: "Product Name,Quantity,SKU Subtotal After Discount,Created Time\n" +
				"Chapéu Panamá,dois,IDR100,2024-01-05 10:00:00\n",
			wantErr: normalizing.ErrColumnNotNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Derive(cleanFrame(t, tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Project(t *testing.T) {
	service := NewService()

	df, err := service.Derive(cleanFrame(t, exportCSV))
	require.NoError(t, err)

	records, err := service.Project(df)
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "Chapéu Panamá", first.ProductName)
	assert.Equal(t, "Acessórios", first.Category)
	assert.Equal(t, "Cartão", first.PaymentMethod)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, 1000, first.Subtotal)
	assert.Equal(t, 2000, first.LineTotal)
	assert.True(t, first.HasTimestamp)
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, 1, first.Month)

	// Linha sem timestamp é projetada, não descartada
	last := records[2]
	assert.False(t, last.HasTimestamp)
	assert.Zero(t, last.Year)
	assert.Zero(t, last.Month)
	assert.Equal(t, 500, last.LineTotal)
}

func TestService_Project_MissingColumn(t *testing.T) {
	service := NewService()

	csv := "Product Name,Quantity,SKU Subtotal After Discount,Created Time\n" +
		"Chapéu Panamá,2,IDR100,2024-01-05 10:00:00\n"

	df, err := service.Derive(cleanFrame(t, csv))
	require.NoError(t, err)

	_, err = service.Project(df)
	require.Error(t, err)
	assert.ErrorIs(t, err, normalizing.ErrMissingColumn)

	var schemaErr *normalizing.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, domain.ColumnCategory, schemaErr.Column)
}
