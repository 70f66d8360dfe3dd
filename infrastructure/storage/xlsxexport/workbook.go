// Package xlsxexport gera a planilha da visão filtrada do dashboard
package xlsxexport

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/advising"
	"github.com/vfg2006/north-star-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary  = "Resumo"
	SheetRecords  = "Dados"
	SheetChannels = "Canais"

	// formato embutido do Excel para #,##0.00
	numFmtAmount = 4
)

var recordHeaders = []string{
	"Data", "Receita", "Gasto em Ads", "COGS", "Taxas de Gateway", "Novos Clientes",
	"Margem de Contribuição", "MER", "Lucro Líquido", "MER Baixo",
}

type workbook struct {
	file        *excelize.File
	headerStyle int
	amountStyle int
	currency    string
}

// Write grava a visão no writer como um arquivo XLSX com três abas
func Write(w io.Writer, view *domain.DashboardResponse, currency string) error {
	if view == nil {
		return errors.New("xlsxexport: visão vazia")
	}

	file := excelize.NewFile()
	defer file.Close()

	wb := &workbook{file: file, currency: currency}
	if err := wb.prepare(); err != nil {
		return err
	}

	steps := []func(*domain.DashboardResponse) error{
		wb.writeSummary,
		wb.writeRecords,
		wb.writeChannels,
	}
	for _, step := range steps {
		if err := step(view); err != nil {
			return err
		}
	}

	if err := file.Write(w); err != nil {
		return errors.Wrap(err, "xlsxexport: erro ao gravar planilha")
	}

	return nil
}

func (wb *workbook) prepare() error {
	if err := wb.file.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.Wrap(err, "xlsxexport: erro ao renomear aba")
	}

	for _, sheet := range []string{SheetRecords, SheetChannels} {
		if _, err := wb.file.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "xlsxexport: erro ao criar aba %s", sheet)
		}
	}

	var err error
	wb.headerStyle, err = wb.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "xlsxexport: erro ao criar estilo")
	}

	wb.amountStyle, err = wb.file.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return errors.Wrap(err, "xlsxexport: erro ao criar estilo")
	}

	return nil
}

// setRow grava os valores a partir da coluna A na linha informada
func (wb *workbook) setRow(sheet string, row int, values ...any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := wb.file.SetCellValue(sheet, cell, value); err != nil {
			return errors.Wrapf(err, "xlsxexport: erro ao gravar %s!%s", sheet, cell)
		}
	}
	return nil
}

func (wb *workbook) boldRow(sheet string, row, columns int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(columns, row)
	return wb.file.SetCellStyle(sheet, first, last, wb.headerStyle)
}

func (wb *workbook) writeSummary(view *domain.DashboardResponse) error {
	summary := view.Summary
	sheet := SheetSummary

	period := "-"
	if summary.StartDate != nil && summary.EndDate != nil {
		period = summary.StartDate.Format(time.DateOnly) + " a " + summary.EndDate.Format(time.DateOnly)
	}

	rows := [][]any{
		{"Indicador", "Valor"},
		{"Período", period},
		{"Cenário", string(view.Filters.Scenario)},
		{"Receita Líquida", utils.FormatMoneyCents(summary.RevenueSum, wb.currency)},
		{"Gasto em Ads", utils.FormatMoneyCents(summary.AdSpendSum, wb.currency)},
		{"Lucro Líquido (CM)", utils.FormatMoneyCents(summary.ContributionMarginSum, wb.currency)},
		{"MER Global", utils.RoundWithTwoDecimalPlace(summary.GlobalMER)},
		{"Margem %", utils.RoundWithTwoDecimalPlace(summary.MarginPct * 100)},
		{"Dias com MER baixo", summary.AnomalyDays},
	}

	row := 1
	for _, values := range rows {
		if err := wb.setRow(sheet, row, values...); err != nil {
			return err
		}
		row++
	}
	if err := wb.boldRow(sheet, 1, 2); err != nil {
		return err
	}

	row++
	if err := wb.setRow(sheet, row, "Cenário Projetado", "Lucro", "Multiplicador", "Descrição"); err != nil {
		return err
	}
	if err := wb.boldRow(sheet, row, 4); err != nil {
		return err
	}

	for _, key := range advising.ScenarioOrder {
		projection, ok := view.Scenarios[key]
		if !ok {
			continue
		}

		row++
		if err := wb.setRow(sheet, row, projection.Label, projection.Profit, projection.Multiplier, projection.Description); err != nil {
			return err
		}
	}

	row += 2
	if err := wb.setRow(sheet, row, "Recomendações"); err != nil {
		return err
	}
	if err := wb.boldRow(sheet, row, 1); err != nil {
		return err
	}
	for _, insight := range view.Insights {
		row++
		if err := wb.setRow(sheet, row, insight.Message); err != nil {
			return err
		}
	}

	return wb.file.SetColWidth(sheet, "A", "D", 28)
}

func (wb *workbook) writeRecords(view *domain.DashboardResponse) error {
	sheet := SheetRecords

	headers := make([]any, len(recordHeaders))
	for i, header := range recordHeaders {
		headers[i] = header
	}
	if err := wb.setRow(sheet, 1, headers...); err != nil {
		return err
	}
	if err := wb.boldRow(sheet, 1, len(recordHeaders)); err != nil {
		return err
	}

	for i, record := range view.Records {
		row := i + 2
		err := wb.setRow(sheet, row,
			record.Date.Format(time.DateOnly),
			record.Revenue,
			record.AdSpend,
			record.COGS,
			record.GatewayFees,
			record.NewCustomers,
			record.ContributionMargin,
			utils.RoundWithTwoDecimalPlace(record.MER),
			record.NetProfit,
			record.AnomalyLowMER,
		)
		if err != nil {
			return err
		}
	}

	if len(view.Records) > 0 {
		last := len(view.Records) + 1
		first, _ := excelize.CoordinatesToCellName(2, 2)
		end, _ := excelize.CoordinatesToCellName(9, last)
		if err := wb.file.SetCellStyle(sheet, first, end, wb.amountStyle); err != nil {
			return errors.Wrap(err, "xlsxexport: erro ao formatar valores")
		}
	}

	return wb.file.SetColWidth(sheet, "A", "J", 18)
}

func (wb *workbook) writeChannels(view *domain.DashboardResponse) error {
	sheet := SheetChannels

	if err := wb.setRow(sheet, 1, "Canal", "Participação", "Gasto", "Estimado"); err != nil {
		return err
	}
	if err := wb.boldRow(sheet, 1, 4); err != nil {
		return err
	}

	for i, channel := range view.ChannelSpend {
		if err := wb.setRow(sheet, i+2, channel.Channel, channel.Share, channel.Amount, channel.Estimated); err != nil {
			return err
		}
	}

	return wb.file.SetColWidth(sheet, "A", "D", 16)
}
