package dashboarding

import (
	"errors"
	"fmt"

	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/pkg/apiErrors"
)

var (
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")
	ErrEmptyDataset     = errors.New("dataset has no records")
	ErrGenerateID       = errors.New("error generating view ID")
)

// DashboardError é um erro com o código de API correspondente
type DashboardError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *DashboardError) Unwrap() error {
	return e.Err
}

func NewDashboardError(err error, code string, details string) *DashboardError {
	return &DashboardError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// ErrorCode classifica err no código de API usado pela camada HTTP
func ErrorCode(err error) string {
	var dashboardErr *DashboardError
	if errors.As(err, &dashboardErr) && dashboardErr.Code != "" {
		return dashboardErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrMissingSourceFile):
		return apiErrors.ErrMissingSource
	case domain.IsDataValidation(err):
		return apiErrors.ErrDataValidation
	default:
		return apiErrors.ErrInternalServer
	}
}
