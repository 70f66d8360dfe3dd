package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/north-star-api/internal/config"
	"github.com/vfg2006/north-star-api/pkg/log"
)

var (
	flagLogLevel string
	flagSource   string
	flagDataPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "northstar",
	Short: "Dashboard de rentabilidade North Star",
	Long:  "Gera a base diária, calcula os KPIs de rentabilidade e apresenta o dashboard no terminal ou via API.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.NewConfig()
		if err != nil {
			return err
		}

		if flagSource != "" {
			loaded.Data.Source = flagSource
		}
		if flagDataPath != "" {
			loaded.Data.Path = flagDataPath
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		level := loaded.App.LogLevel
		if flagLogLevel != "" {
			level = flagLogLevel
		}
		log.Setup(level, os.Stderr)

		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

// Execute é o ponto de entrada chamado pelo main
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Nível de log (sobrepõe LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Fonte da base: csv ou postgres (sobrepõe DATA_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "Caminho do CSV bruto (sobrepõe DATA_PATH)")

	rootCmd.AddCommand(ingestCmd, processCmd, reportCmd, serveCmd)
}
