package utils

import "time"

// StartOfDay trunca o timestamp para a meia-noite do mesmo dia.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfWeek retorna o domingo que encerra a semana-calendário do timestamp.
// Um timestamp que já cai no domingo encerra a própria semana.
func EndOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// EndOfMonth retorna o último dia do mês-calendário do timestamp.
func EndOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
