package convert

import (
	"github.com/shopspring/decimal"

	"github.com/wartimekillers/snapxchange/internal/format"
)

// Convert возвращает raw * rate, округленное и с разделителями.
// Пустая строка, если нет суммы или курса.
func Convert(raw string, rate decimal.Decimal) string {
	if raw == "" || rate.IsZero() {
		return ""
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return ""
	}
	return format.Number(amount.Mul(rate))
}
