package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/north-star-api/infrastructure/database/postgres"
	"github.com/vfg2006/north-star-api/internal/domain"
)

const (
	dailyRecordsTable = "daily_records"

	// limite de linhas por INSERT para não estourar os 65535 parâmetros do postgres
	upsertBatchSize = 500
)

var dailyRecordColumns = []string{"date", "revenue", "ad_spend", "cogs", "gateway_fees", "new_customers"}

type DailyRecordRepository interface {
	Load(ctx context.Context) (domain.RecordSet, error)
	Save(ctx context.Context, records domain.RecordSet) error
}

type dailyRecordRepository struct {
	conn postgres.Conn
}

func NewDailyRecordRepository(conn postgres.Conn) DailyRecordRepository {
	return &dailyRecordRepository{
		conn: conn,
	}
}

// Load lê todos os registros em ordem de data. Uma tabela vazia equivale a uma base ausente.
func (r *dailyRecordRepository) Load(ctx context.Context) (domain.RecordSet, error) {
	query, args, err := buildLoadQuery()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make(domain.RecordSet, 0)
	for rows.Next() {
		record, err := scanDailyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro diário: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if len(records) == 0 {
		return nil, errors.Wrap(domain.ErrMissingSourceFile,
			"a tabela daily_records está vazia. Execute `northstar ingest` primeiro")
	}

	logrus.WithField("records", len(records)).Debug("repository: registros diários carregados")

	return records, nil
}

// Save grava os registros em uma transação, atualizando os dias que já existem
func (r *dailyRecordRepository) Save(ctx context.Context, records domain.RecordSet) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(records); start += upsertBatchSize {
			end := min(start+upsertBatchSize, len(records))

			query, args, err := buildUpsertQuery(records[start:end])
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				if pqErr, ok := err.(*pq.Error); ok {
					return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("erro ao executar a query: %w", err)
			}
		}

		return nil
	})
}

func buildLoadQuery() (string, []any, error) {
	return squirrel.
		Select(dailyRecordColumns...).
		From(dailyRecordsTable).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildUpsertQuery(records domain.RecordSet) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert(dailyRecordsTable).
		Columns(dailyRecordColumns...)

	for _, record := range records {
		query = query.Values(
			record.Date.Format(time.DateOnly),
			record.Revenue,
			record.AdSpend,
			record.COGS,
			record.GatewayFees,
			record.NewCustomers,
		)
	}

	return query.
		Suffix(`ON CONFLICT (date) DO UPDATE SET
				revenue = EXCLUDED.revenue,
				ad_spend = EXCLUDED.ad_spend,
				cogs = EXCLUDED.cogs,
				gateway_fees = EXCLUDED.gateway_fees,
				new_customers = EXCLUDED.new_customers,
				updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func scanDailyRecord(rows *sql.Rows) (domain.DailyRecord, error) {
	var record domain.DailyRecord
	var date time.Time

	err := rows.Scan(
		&date,
		&record.Revenue,
		&record.AdSpend,
		&record.COGS,
		&record.GatewayFees,
		&record.NewCustomers,
	)
	if err != nil {
		return record, err
	}

	record.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	return record, nil
}
