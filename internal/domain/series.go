package domain

import "time"

// Granularity define a largura do bucket temporal usado na agregação.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// PeriodBucket é um período observado: o timestamp canônico do fim do período
// e a quantidade total vendida dentro dele.
type PeriodBucket struct {
	PeriodEnd time.Time `json:"period_end"`
	Quantity  int       `json:"quantity"`
}

// PeriodSeries é a série ordenada de buckets de uma granularidade.
// Invariantes: um bucket por período observado, ordenação ascendente por
// PeriodEnd e nenhum preenchimento de períodos sem transações.
type PeriodSeries struct {
	Granularity Granularity    `json:"granularity"`
	Buckets     []PeriodBucket `json:"buckets"`
}

// TotalQuantity soma as quantidades de todos os buckets da série.
func (s PeriodSeries) TotalQuantity() int {
	total := 0
	for _, b := range s.Buckets {
		total += b.Quantity
	}
	return total
}
