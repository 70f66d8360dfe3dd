// Package cli formata a visão do dashboard para o terminal
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/advising"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Width(64).
			Align(lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(20)

	labelStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

var severityColors = map[domain.Severity]lipgloss.Color{
	domain.SeverityCritical: ColorRed,
	domain.SeverityWarning:  ColorOrange,
	domain.SeverityPositive: ColorGreen,
	domain.SeverityInfo:     ColorAccent,
}

// Card é um indicador com rótulo e valor já formatado
type Card struct {
	Label    string
	Value    string
	Severity domain.Severity
}

func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderCards coloca os cartões lado a lado
func RenderCards(cards []Card) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		value := lipgloss.NewStyle().Bold(true)
		if color, ok := severityColors[card.Severity]; ok {
			value = value.Foreground(color)
		}
		rendered = append(rendered, cardStyle.Render(labelStyle.Render(card.Label)+"\n"+value.Render(card.Value)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func RenderTable(title string, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)

	if title == "" {
		return t.Render()
	}
	return headerStyle.Render(title) + "\n" + t.Render()
}

// RenderMarkdown renderiza o markdown das recomendações sem códigos de cor
func RenderMarkdown(source string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := renderer.Render(source)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(out, "\n"), nil
}

// SummaryCards monta os cartões de KPI do período
func SummaryCards(summary domain.PeriodSummary, currency string) []Card {
	merSeverity := domain.SeverityPositive
	if summary.GlobalMER < 3.0 {
		merSeverity = domain.SeverityCritical
	}

	marginSeverity := domain.SeverityPositive
	if summary.MarginPct < 0.15 {
		marginSeverity = domain.SeverityWarning
	}

	return []Card{
		{Label: "Receita Líquida", Value: utils.FormatMoney(summary.RevenueSum, currency)},
		{Label: "Lucro Real (CM)", Value: utils.FormatMoney(summary.ContributionMarginSum, currency)},
		{Label: "MER Global", Value: fmt.Sprintf("%.2f", summary.GlobalMER), Severity: merSeverity},
		{Label: "Margem", Value: fmt.Sprintf("%.1f%%", summary.MarginPct*100), Severity: marginSeverity},
	}
}

// RenderReport escreve a visão completa: cartões, narrativa, recomendações, cenários e canais
func RenderReport(w io.Writer, view *domain.DashboardResponse, currency string, width int) error {
	var b strings.Builder

	period := "-"
	if view.Summary.StartDate != nil && view.Summary.EndDate != nil {
		period = view.Summary.StartDate.Format(time.DateOnly) + " → " + view.Summary.EndDate.Format(time.DateOnly)
	}

	b.WriteString(RenderTitle("North Star · Rentabilidade"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Período %s · cenário %s · %d dias", period, view.Filters.Scenario, view.Summary.Days)))
	b.WriteString("\n")
	b.WriteString(RenderCards(SummaryCards(view.Summary, currency)))
	b.WriteString("\n\n")

	var md strings.Builder
	md.WriteString(view.Story)
	md.WriteString("\n\n## Recomendações\n\n")
	for _, insight := range view.Insights {
		md.WriteString("- ")
		md.WriteString(insight.Message)
		md.WriteString("\n")
	}
	md.WriteString("\n")
	md.WriteString(view.Verdict.Message)
	md.WriteString("\n")

	rendered, err := RenderMarkdown(md.String(), width)
	if err != nil {
		return err
	}
	b.WriteString(rendered)
	b.WriteString("\n\n")

	b.WriteString(RenderTable("Simulador de Cenários", []string{"Cenário", "Lucro", "Multiplicador", "Ação"}, scenarioRows(view.Scenarios, currency)))
	b.WriteString("\n\n")
	b.WriteString(RenderTable("Gasto por Canal (estimado)", []string{"Canal", "Participação", "Gasto"}, channelRows(view.ChannelSpend, currency)))
	b.WriteString("\n")

	if view.Summary.AnomalyDays > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(ColorOrange).Render(
			fmt.Sprintf("⚠ %d dia(s) com MER abaixo do limiar", view.Summary.AnomalyDays)))
		b.WriteString("\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// RenderRecords escreve a tabela detalhada de registros
func RenderRecords(w io.Writer, records domain.RecordSet, currency string) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		flag := ""
		if record.AnomalyLowMER {
			flag = "⚠"
		}
		rows = append(rows, []string{
			record.Date.Format(time.DateOnly),
			utils.FormatMoneyCents(record.Revenue, currency),
			utils.FormatMoneyCents(record.AdSpend, currency),
			utils.FormatMoneyCents(record.ContributionMargin, currency),
			fmt.Sprintf("%.2f", record.MER),
			flag,
		})
	}

	_, err := io.WriteString(w, RenderTable("Registros", []string{"Data", "Receita", "Ads", "CM", "MER", ""}, rows)+"\n")
	return err
}

func scenarioRows(scenarios map[string]domain.ScenarioProjection, currency string) [][]string {
	rows := make([][]string, 0, len(scenarios))
	for _, key := range advising.ScenarioOrder {
		projection, ok := scenarios[key]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			projection.Label,
			utils.FormatMoney(projection.Profit, currency),
			fmt.Sprintf("×%.2f", projection.Multiplier),
			projection.Description,
		})
	}

	return rows
}

func channelRows(channels []domain.ChannelSpend, currency string) [][]string {
	rows := make([][]string, 0, len(channels))
	for _, channel := range channels {
		rows = append(rows, []string{
			channel.Channel,
			fmt.Sprintf("%.0f%%", channel.Share*100),
			utils.FormatMoney(channel.Amount, currency),
		})
	}
	return rows
}
