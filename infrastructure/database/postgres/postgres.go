package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/north-star-api/internal/config"
)

const dailyRecordsSchema = `
CREATE TABLE IF NOT EXISTS daily_records (
	date          DATE PRIMARY KEY,
	revenue       NUMERIC(14, 2) NOT NULL CHECK (revenue >= 0),
	ad_spend      NUMERIC(14, 2) NOT NULL CHECK (ad_spend >= 0),
	cogs          NUMERIC(14, 2) NOT NULL CHECK (cogs >= 0),
	gateway_fees  NUMERIC(14, 2) NOT NULL CHECK (gateway_fees >= 0),
	new_customers INTEGER        NOT NULL CHECK (new_customers >= 0),
	created_at    TIMESTAMPTZ    NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ    NOT NULL DEFAULT NOW()
)`

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: erro ao abrir conexão")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "postgres: banco indisponível")
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// EnsureSchema cria a tabela daily_records se ela ainda não existir
func (c *Connection) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, dailyRecordsSchema); err != nil {
		return errors.Wrap(err, "postgres: erro ao criar tabela daily_records")
	}
	return nil
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rollback falhou: %v", rbErr)
		}
		return err
	}

	return tx.Commit()
}
