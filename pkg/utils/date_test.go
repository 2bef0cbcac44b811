package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 1, 5, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, day(2024, 1, 5), StartOfDay(ts))
}

func TestEndOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "Sexta fecha no domingo seguinte", in: day(2024, 1, 5), want: day(2024, 1, 7)},
		{name: "Segunda fecha no domingo da mesma semana", in: day(2024, 1, 1), want: day(2024, 1, 7)},
		{name: "Domingo fecha a própria semana", in: day(2024, 1, 7), want: day(2024, 1, 7)},
		{name: "Hora do dia não muda o fechamento", in: time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC), want: day(2024, 1, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EndOfWeek(tt.in))
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "Janeiro", in: day(2024, 1, 5), want: day(2024, 1, 31)},
		{name: "Fevereiro em ano bissexto", in: day(2024, 2, 10), want: day(2024, 2, 29)},
		{name: "Fevereiro em ano comum", in: day(2023, 2, 10), want: day(2023, 2, 28)},
		{name: "Último dia do mês fecha nele mesmo", in: day(2024, 6, 30), want: day(2024, 6, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EndOfMonth(tt.in))
		})
	}
}
