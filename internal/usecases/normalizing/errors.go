package normalizing

import (
	"errors"
	"fmt"
)

// Erros de contrato de schema. Valores malformados nunca geram erro (degradam
// para texto ou para o marcador de ausência); colunas obrigatórias ausentes sim.
var (
	ErrMissingColumn    = errors.New("required column is missing")
	ErrColumnNotNumeric = errors.New("required column is not numeric")
)

// SchemaError é um erro de schema com a coluna envolvida.
type SchemaError struct {
	Err    error  // Erro base
	Column string // Nome da coluna do export
}

// Error implementa a interface error
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Column)
}

// Unwrap permite usar errors.Is com os erros sentinela
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewSchemaError cria um SchemaError para a coluna informada
func NewSchemaError(err error, column string) *SchemaError {
	return &SchemaError{Err: err, Column: column}
}
