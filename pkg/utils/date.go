package utils

import (
	"strings"
	"time"
)

// ParseDate lê uma data no formato 2006-01-02. Texto vazio devolve nil, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
