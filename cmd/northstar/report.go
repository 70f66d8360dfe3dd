package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/north-star-api/infrastructure/storage/xlsxexport"
	"github.com/vfg2006/north-star-api/internal/bootstrap"
	"github.com/vfg2006/north-star-api/internal/cli"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

var (
	flagStart    string
	flagEnd      string
	flagScenario string
	flagXLSX     string
	flagRecords  bool
	flagWidth    int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Mostra o dashboard do período no terminal",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagStart, "start", "", "Data inicial (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&flagEnd, "end", "", "Data final (YYYY-MM-DD)")
	reportCmd.Flags().StringVarP(&flagScenario, "scenario", "s", string(domain.ScenarioRealistic), "Cenário global: realistic, pessimistic ou optimistic")
	reportCmd.Flags().StringVar(&flagXLSX, "xlsx", "", "Exporta a visão para uma planilha")
	reportCmd.Flags().BoolVar(&flagRecords, "records", false, "Inclui a tabela de registros diários")
	reportCmd.Flags().IntVar(&flagWidth, "width", 80, "Largura do texto")
}

func parseReportFilters() (domain.DashboardFilters, error) {
	start, err := utils.ParseDate(flagStart)
	if err != nil {
		return domain.DashboardFilters{}, fmt.Errorf("--start inválido: %w", err)
	}

	end, err := utils.ParseDate(flagEnd)
	if err != nil {
		return domain.DashboardFilters{}, fmt.Errorf("--end inválido: %w", err)
	}

	scenario, err := domain.ParseGlobalScenario(flagScenario)
	if err != nil {
		return domain.DashboardFilters{}, err
	}

	return domain.DashboardFilters{StartDate: start, EndDate: end, Scenario: scenario}, nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filters, err := parseReportFilters()
	if err != nil {
		return err
	}

	store, closer, err := bootstrap.NewRecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer()

	service := bootstrap.NewDashboardService(store, cfg)

	view, err := service.BuildDashboard(ctx, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := cli.RenderReport(out, view, cfg.Analysis.Currency, flagWidth); err != nil {
		return err
	}

	if flagRecords {
		if err := cli.RenderRecords(out, view.Records, cfg.Analysis.Currency); err != nil {
			return err
		}
	}

	if flagXLSX == "" {
		return nil
	}

	if err := writeWorkbook(flagXLSX, view, cfg.Analysis.Currency); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n📊 Planilha gravada em %s\n", flagXLSX)
	return nil
}

// writeWorkbook grava a mesma visão impressa no terminal
func writeWorkbook(path string, view *domain.DashboardResponse, currency string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := xlsxexport.Write(file, view, currency); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
