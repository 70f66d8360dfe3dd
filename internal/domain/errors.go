package domain

import (
	"errors"
	"fmt"
)

// ErrMissingSourceFile indica que a base de registros ainda não foi gerada
var ErrMissingSourceFile = errors.New("source data file not found")

// DataValidationError descreve um registro malformado. Nenhum reparo parcial é feito.
type DataValidationError struct {
	Field  string `json:"field"`  // Campo com problema (ex: revenue)
	Row    int    `json:"row"`    // Índice da linha (base 0) ou -1 quando não se aplica
	Reason string `json:"reason"`
}

// Error implementa a interface error
func (e *DataValidationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("invalid field %q at row %d: %s", e.Field, e.Row, e.Reason)
	}
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewDataValidationError cria um erro de validação para um campo e linha
func NewDataValidationError(field string, row int, reason string) *DataValidationError {
	return &DataValidationError{
		Field:  field,
		Row:    row,
		Reason: reason,
	}
}

// IsDataValidation informa se err (ou algum erro embrulhado) é um DataValidationError
func IsDataValidation(err error) bool {
	var validationErr *DataValidationError
	return errors.As(err, &validationErr)
}
