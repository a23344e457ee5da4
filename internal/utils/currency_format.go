package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayCurrency is the currency every ledger amount is shown in.
const DisplayCurrency = "USD"

// FormatMoney renders amount in DisplayCurrency, e.g. 1234.5 becomes "$1,234.50".
// Amounts are rounded half away from zero to the currency's minor unit.
func FormatMoney(amount decimal.Decimal) string {
	return FormatMoneyIn(amount, DisplayCurrency)
}

// FormatMoneyIn renders amount in the ISO 4217 currency code. Unknown codes are rounded
// to two decimal places.
func FormatMoneyIn(amount decimal.Decimal, code string) string {
	currency := money.GetCurrency(code)
	fraction := int32(2)
	if currency != nil {
		fraction = int32(currency.Fraction)
	}
	minor := amount.Round(fraction).Shift(fraction).IntPart()
	return money.New(minor, code).Display()
}
