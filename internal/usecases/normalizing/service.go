// Package normalizing converte o export bruto em uma tabela limpa: remove
// colunas administrativas, converte colunas monetárias em inteiros e coage o
// timestamp para o formato canônico.
package normalizing

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

// Marcador de moeda e separador de milhar do export (valores em IDR,
// ex.: "IDR1.234.567")
const (
	currencyToken      = "IDR"
	thousandsSeparator = "."
)

// CanonicalTimeLayout é o formato em que timestamps válidos são reescritos
// dentro da tabela. Timestamps não reconhecidos viram o marcador vazio.
const CanonicalTimeLayout = "2006-01-02 15:04:05"

// MissingTimestamp é o marcador de timestamp ausente dentro da tabela.
const MissingTimestamp = ""

// Colunas administrativas descartadas quando presentes; a ausência de
// qualquer uma delas não é um erro.
var droppedColumns = []string{
	"Order ID",
	"Seller SKU",
	"Tracking ID",
	"Cancelation/Return Type",
	"Seller Note",
	"Checked Marked by",
}

// Formatos de timestamp aceitos no export; o primeiro que casar vence.
var timestampLayouts = []string{
	CanonicalTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Normalizer limpa a tabela bruta do export de vendas.
type Normalizer interface {
	Normalize(df dataframe.DataFrame) (dataframe.DataFrame, error)
}

type Service struct{}

// NewService cria o serviço de normalização
func NewService() Normalizer {
	return &Service{}
}

// Normalize aplica a limpeza completa: descarte de colunas administrativas,
// coerção monetária coluna a coluna (tudo-ou-nada) e coerção do timestamp.
// Nenhuma linha é descartada; valores malformados degradam silenciosamente.
func (s *Service) Normalize(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	df = dropAdministrativeColumns(df)
	if df.Err != nil {
		return df, df.Err
	}

	for _, name := range df.Names() {
		if name == domain.ColumnCreatedTime {
			continue
		}

		col := df.Col(name)
		if col.Type() != series.String {
			continue
		}

		df = df.Mutate(coerceNumericColumn(name, col.Records()))
		if df.Err != nil {
			return df, df.Err
		}
	}

	if !HasColumn(df, domain.ColumnCreatedTime) {
		return df, NewSchemaError(ErrMissingColumn, domain.ColumnCreatedTime)
	}

	df = df.Mutate(coerceTimestampColumn(df.Col(domain.ColumnCreatedTime).Records()))
	return df, df.Err
}

// dropAdministrativeColumns remove as colunas de identificação/administração
// que não participam de nenhuma análise.
func dropAdministrativeColumns(df dataframe.DataFrame) dataframe.DataFrame {
	dropped := make(map[string]bool, len(droppedColumns))
	for _, name := range droppedColumns {
		dropped[name] = true
	}

	kept := make([]string, 0, len(df.Names()))
	removed := 0
	for _, name := range df.Names() {
		if dropped[name] {
			removed++
			continue
		}
		kept = append(kept, name)
	}

	if removed == 0 {
		return df
	}

	logrus.WithFields(logrus.Fields{
		"removed_columns": removed,
	}).Debug("Colunas administrativas descartadas do export")

	return df.Select(kept)
}

// coerceNumericColumn remove o marcador de moeda e o separador de milhar de
// todos os valores e converte a coluna para inteiro apenas quando TODOS os
// valores convertem. A política é tudo-ou-nada por coluna: um único valor
// inválido mantém a coluna inteira como texto (já sem o marcador de moeda).
func coerceNumericColumn(name string, records []string) series.Series {
	stripped := make([]string, len(records))
	values := make([]int, len(records))
	allNumeric := true

	for i, raw := range records {
		v := strings.ReplaceAll(raw, currencyToken, "")
		v = strings.ReplaceAll(v, thousandsSeparator, "")
		stripped[i] = v

		if !allNumeric {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			allNumeric = false
			continue
		}
		values[i] = n
	}

	if allNumeric && len(records) > 0 {
		return series.New(values, series.Int, name)
	}

	return series.New(stripped, series.String, name)
}

// coerceTimestampColumn reescreve timestamps reconhecidos no formato canônico
// e troca os não reconhecidos pelo marcador de ausência, sem falhar a linha.
func coerceTimestampColumn(records []string) series.Series {
	out := make([]string, len(records))
	missing := 0

	for i, raw := range records {
		t, ok := ParseTimestamp(raw)
		if !ok {
			out[i] = MissingTimestamp
			missing++
			continue
		}
		out[i] = t.Format(CanonicalTimeLayout)
	}

	if missing > 0 {
		logrus.WithFields(logrus.Fields{
			"rows_without_timestamp": missing,
		}).Debug("Timestamps não reconhecidos viraram o marcador de ausência")
	}

	return series.New(out, series.String, domain.ColumnCreatedTime)
}

// ParseTimestamp tenta interpretar um timestamp do export contra a lista fixa
// de formatos aceitos.
func ParseTimestamp(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// HasColumn informa se a coluna existe na tabela.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// RequireColumns valida o contrato de schema das etapas seguintes: retorna um
// SchemaError nomeando a primeira coluna obrigatória ausente.
func RequireColumns(df dataframe.DataFrame, columns ...string) error {
	for _, column := range columns {
		if !HasColumn(df, column) {
			return NewSchemaError(ErrMissingColumn, column)
		}
	}
	return nil
}
