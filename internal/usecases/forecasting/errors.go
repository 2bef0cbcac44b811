package forecasting

import (
	"errors"
	"fmt"
)

// Erros do motor de previsão
var (
	ErrInsufficientHistory = errors.New("monthly history is too short to train")
	ErrInvalidPeriod       = errors.New("invalid forecast period")
)

// InsufficientHistoryError indica que a série mensal não tem períodos
// suficientes para formar uma partição de teste não vazia. A mensagem carrega
// o mínimo exigido para que o chamador saiba o que corrigir.
type InsufficientHistoryError struct {
	Required int // Mínimo de períodos mensais exigidos
	Observed int // Períodos presentes na série
}

// Error implementa a interface error
func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf(
		"%s: need at least %d monthly periods, got %d",
		ErrInsufficientHistory.Error(), e.Required, e.Observed,
	)
}

// Unwrap permite usar errors.Is com o erro sentinela
func (e *InsufficientHistoryError) Unwrap() error {
	return ErrInsufficientHistory
}
