package utils

import (
	"math"

	"github.com/Rhymond/go-money"
)

const defaultCurrency = money.USD

// FormatMoney formata o valor sem centavos, com separador de milhar da moeda (ex: $12,345)
func FormatMoney(amount float64, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(defaultCurrency)
	}

	formatter := money.NewFormatter(0, currency.Decimal, currency.Thousand, currency.Grapheme, currency.Template)
	return formatter.Format(int64(math.Round(amount)))
}

// FormatMoneyCents formata o valor com as casas decimais da moeda (ex: $12,345.67)
func FormatMoneyCents(amount float64, currencyCode string) string {
	if money.GetCurrency(currencyCode) == nil {
		currencyCode = defaultCurrency
	}

	return money.NewFromFloat(amount, currencyCode).Display()
}
