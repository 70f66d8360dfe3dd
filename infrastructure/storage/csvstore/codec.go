package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/north-star-api/internal/domain"
)

// Colunas obrigatórias, já normalizadas
const (
	ColumnDate         = "date"
	ColumnRevenue      = "revenue"
	ColumnAdSpend      = "ad_spend"
	ColumnCOGS         = "cogs"
	ColumnGatewayFees  = "gateway_fees"
	ColumnNewCustomers = "new_customers"

	ColumnContributionMargin = "contribution_margin"
	ColumnMER                = "mer"
	ColumnNetProfit          = "net_profit"
	ColumnAnomalyLowMER      = "anomaly_low_mer"
)

// RequiredColumns na ordem em que são gravadas
var RequiredColumns = []string{
	ColumnDate,
	ColumnRevenue,
	ColumnAdSpend,
	ColumnCOGS,
	ColumnGatewayFees,
	ColumnNewCustomers,
}

// ProcessedColumns são as colunas extras do arquivo processado
var ProcessedColumns = []string{
	ColumnContributionMargin,
	ColumnMER,
	ColumnNetProfit,
	ColumnAnomalyLowMER,
}

var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// NormalizeColumn padroniza o nome da coluna: sem espaços nas bordas, minúsculo e com _ no lugar de espaços
func NormalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Decode lê um CSV com cabeçalho e devolve os registros ordenados por data
func Decode(r io.Reader) (domain.RecordSet, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// linhas curtas chegam ao decodeRow, que aponta a coluna sem valor
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.NewDataValidationError("header", -1, "empty file")
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler cabeçalho do CSV")
	}

	index := make(map[string]int, len(header))
	for i, column := range header {
		index[NormalizeColumn(column)] = i
	}

	for _, column := range RequiredColumns {
		if _, ok := index[column]; !ok {
			return nil, domain.NewDataValidationError(column, -1, "missing required column")
		}
	}

	records := make(domain.RecordSet, 0)
	seen := make(map[string]int)

	for row := 0; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, domain.NewDataValidationError("row", row, parseErr.Err.Error())
			}
			return nil, errors.Wrapf(err, "erro ao ler linha %d do CSV", row)
		}

		record, err := decodeRow(fields, index, row)
		if err != nil {
			return nil, err
		}

		key := record.Date.Format(time.DateOnly)
		if previous, exists := seen[key]; exists {
			return nil, domain.NewDataValidationError(ColumnDate, row, fmt.Sprintf("duplicate date %s (first seen at row %d)", key, previous))
		}
		seen[key] = row

		records = append(records, record)
	}

	records.SortByDate()

	return records, nil
}

func decodeRow(fields []string, index map[string]int, row int) (domain.DailyRecord, error) {
	var record domain.DailyRecord

	value := func(column string) string {
		i := index[column]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	date, err := parseDate(value(ColumnDate))
	if err != nil {
		return record, domain.NewDataValidationError(ColumnDate, row, err.Error())
	}
	record.Date = date

	amounts := []struct {
		column string
		target *float64
	}{
		{ColumnRevenue, &record.Revenue},
		{ColumnAdSpend, &record.AdSpend},
		{ColumnCOGS, &record.COGS},
		{ColumnGatewayFees, &record.GatewayFees},
	}

	for _, amount := range amounts {
		parsed, err := parseAmount(value(amount.column))
		if err != nil {
			return record, domain.NewDataValidationError(amount.column, row, err.Error())
		}
		*amount.target = parsed
	}

	customers, err := parseCount(value(ColumnNewCustomers))
	if err != nil {
		return record, domain.NewDataValidationError(ColumnNewCustomers, row, err.Error())
	}
	record.NewCustomers = customers

	return record, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing value")
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized date %q", raw)
}

func parseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("missing value")
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Errorf("not a number: %q", raw)
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, errors.Errorf("not a finite number: %q", raw)
	}
	if parsed < 0 {
		return 0, errors.New("negative amount")
	}

	return parsed, nil
}

func parseCount(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("missing value")
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		// exportações via planilha às vezes gravam inteiros como 13.0
		parsed, floatErr := strconv.ParseFloat(raw, 64)
		if floatErr != nil || parsed != math.Trunc(parsed) || math.IsInf(parsed, 0) {
			return 0, errors.Errorf("not an integer: %q", raw)
		}
		count = int(parsed)
	}
	if count < 0 {
		return 0, errors.New("negative count")
	}

	return count, nil
}

// Encode grava os registros com cabeçalho. withKPIs inclui as colunas derivadas.
func Encode(w io.Writer, records domain.RecordSet, withKPIs bool) error {
	writer := csv.NewWriter(w)

	header := append([]string{}, RequiredColumns...)
	if withKPIs {
		header = append(header, ProcessedColumns...)
	}

	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "erro ao gravar cabeçalho do CSV")
	}

	for _, record := range records {
		row := []string{
			record.Date.Format(time.DateOnly),
			formatFloat(record.Revenue),
			formatFloat(record.AdSpend),
			formatFloat(record.COGS),
			formatFloat(record.GatewayFees),
			strconv.Itoa(record.NewCustomers),
		}

		if withKPIs {
			row = append(row,
				formatFloat(record.ContributionMargin),
				formatFloat(record.MER),
				formatFloat(record.NetProfit),
				strconv.FormatBool(record.AnomalyLowMER),
			)
		}

		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "erro ao gravar registro de %s", record.Date.Format(time.DateOnly))
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "erro ao finalizar CSV")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
