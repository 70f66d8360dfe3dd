// Package bootstrap monta as dependências compartilhadas pela API e pela CLI
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/north-star-api/infrastructure/database/postgres"
	"github.com/vfg2006/north-star-api/infrastructure/repository"
	"github.com/vfg2006/north-star-api/infrastructure/storage/csvstore"
	"github.com/vfg2006/north-star-api/internal/config"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/attributing"
	"github.com/vfg2006/north-star-api/internal/usecases/dashboarding"
)

// RecordStore lê e grava a base bruta, seja em CSV ou no postgres
type RecordStore interface {
	Load(ctx context.Context) (domain.RecordSet, error)
	Save(ctx context.Context, records domain.RecordSet) error
}

// NewRecordStore abre o armazenamento configurado em DATA_SOURCE. O closer deve ser chamado ao final.
func NewRecordStore(ctx context.Context, cfg *config.Config) (RecordStore, func(), error) {
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
		}

		if err := conn.Ping(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("erro ao testar conexão com PostgreSQL: %w", err)
		}

		if err := conn.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("erro ao criar a tabela de registros: %w", err)
		}

		logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

		closer := func() {
			if err := conn.Close(); err != nil {
				logrus.WithError(err).Warn("Erro ao fechar a conexão com PostgreSQL")
			}
		}

		return repository.NewDailyRecordRepository(conn), closer, nil
	case config.DataSourceCSV, "":
		logrus.WithField("path", cfg.Data.Path).Debug("Usando base CSV")
		return csvstore.New(cfg.Data.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("fonte de dados desconhecida: %q", cfg.Data.Source)
	}
}

// NewDashboardService liga a fonte de registros ao cálculo de KPIs e à montagem da visão
func NewDashboardService(source dashboarding.RecordSource, cfg *config.Config) dashboarding.Dashboarder {
	attributor := attributing.NewService(cfg.Analysis.MERThreshold)
	return dashboarding.NewService(source, attributor, cfg.Analysis.Currency)
}
