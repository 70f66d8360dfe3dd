package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/north-star-api/infrastructure/storage/csvstore"
	"github.com/vfg2006/north-star-api/internal/bootstrap"
	"github.com/vfg2006/north-star-api/internal/usecases/attributing"
	"github.com/vfg2006/north-star-api/pkg/log"
)

var flagOutput string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Calcula os KPIs de toda a base e grava o CSV processado",
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Arquivo de saída (padrão PROCESSED_PATH)")
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	output := cfg.Data.ProcessedPath
	if flagOutput != "" {
		output = flagOutput
	}

	store, closer, err := bootstrap.NewRecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer()

	records, err := store.Load(ctx)
	if err != nil {
		return err
	}

	processed, err := attributing.NewService(cfg.Analysis.MERThreshold).ApplyAttributionLogic(records)
	if err != nil {
		return err
	}

	if err := csvstore.WriteProcessed(output, processed); err != nil {
		return err
	}

	anomalies := 0
	for _, record := range processed {
		if record.AnomalyLowMER {
			anomalies++
		}
	}

	log.L.WithFields(log.Fields{
		"records":   len(processed),
		"anomalies": anomalies,
		"output":    output,
	}).Info("process: base processada")

	fmt.Fprintf(cmd.OutOrStdout(), "✅ %d registros processados (%d com MER abaixo de %.1f) em %s\n",
		len(processed), anomalies, cfg.Analysis.MERThreshold, output)

	return nil
}
