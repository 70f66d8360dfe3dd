// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"sort"
	"time"
)

// DailyRecord representa um dia de operação da loja com os valores brutos e os KPIs derivados
type DailyRecord struct {
	Date         time.Time `json:"date"`
	Revenue      float64   `json:"revenue"`
	AdSpend      float64   `json:"ad_spend"`
	COGS         float64   `json:"cogs"`
	GatewayFees  float64   `json:"gateway_fees"`
	NewCustomers int       `json:"new_customers"`

	// Campos derivados, preenchidos pelo cálculo de KPIs
	ContributionMargin float64 `json:"contribution_margin"`
	MER                float64 `json:"mer"`
	NetProfit          float64 `json:"net_profit"`
	AnomalyLowMER      bool    `json:"anomaly_low_mer"`
}

// RecordSet é uma sequência de registros diários ordenada por data
type RecordSet []DailyRecord

// Clone devolve uma cópia independente do conjunto
func (rs RecordSet) Clone() RecordSet {
	if rs == nil {
		return nil
	}

	out := make(RecordSet, len(rs))
	copy(out, rs)
	return out
}

// SortByDate ordena os registros por data crescente, mantendo a ordem relativa de datas iguais
func (rs RecordSet) SortByDate() {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Date.Before(rs[j].Date)
	})
}

// Bounds retorna a primeira e a última data do conjunto. ok é falso para um conjunto vazio.
func (rs RecordSet) Bounds() (first, last time.Time, ok bool) {
	if len(rs) == 0 {
		return time.Time{}, time.Time{}, false
	}

	first, last = rs[0].Date, rs[0].Date
	for _, record := range rs[1:] {
		if record.Date.Before(first) {
			first = record.Date
		}
		if record.Date.After(last) {
			last = record.Date
		}
	}

	return first, last, true
}

// Between devolve uma cópia com os registros cujo dia está em [start, end], ambos inclusivos
func (rs RecordSet) Between(start, end time.Time) RecordSet {
	startDay := TruncateToDay(start)
	endDay := TruncateToDay(end)

	out := make(RecordSet, 0, len(rs))
	for _, record := range rs {
		day := TruncateToDay(record.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		out = append(out, record)
	}

	return out
}

// TruncateToDay remove a parte de horário mantendo o fuso da data
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
