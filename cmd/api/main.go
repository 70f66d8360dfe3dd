package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/north-star-api/internal/api"
	"github.com/vfg2006/north-star-api/internal/bootstrap"
	"github.com/vfg2006/north-star-api/internal/config"
	"github.com/vfg2006/north-star-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, os.Stdout)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closer, err := bootstrap.NewRecordStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir a base de registros")
	}
	defer closer()

	server, err := api.New(cfg, bootstrap.NewDashboardService(store, cfg))
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
