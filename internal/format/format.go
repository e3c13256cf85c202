// Package format отвечает за ввод и отображение сумм: валидация цифр,
// разделители тысяч в стиле en-US.
package format

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Separator = ","

var ErrInvalidAmount = errors.New("amount must contain digits only")

var printer = message.NewPrinter(language.English)

// Strip убирает разделители тысяч.
func Strip(s string) string {
	return strings.ReplaceAll(s, Separator, "")
}

// Accept возвращает сырые цифры или ErrInvalidAmount. Частичной правки нет:
// либо вся строка после Strip состоит из цифр, либо ввод отклоняется.
func Accept(s string) (string, error) {
	raw := Strip(s)
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return "", ErrInvalidAmount
		}
	}
	return raw, nil
}

// Group расставляет разделители в строке цифр. Strip(Group(raw)) == raw.
func Group(raw string) string {
	if len(raw) <= 3 {
		return raw
	}
	var b strings.Builder
	head := len(raw) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(raw[:head])
	for i := head; i < len(raw); i += 3 {
		b.WriteString(Separator)
		b.WriteString(raw[i : i+3])
	}
	return b.String()
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// Number округляет до целого и форматирует с разделителями.
func Number(v decimal.Decimal) string {
	rounded := v.Round(0)
	if rounded.Abs().GreaterThan(maxInt64) {
		s := rounded.StringFixed(0)
		if strings.HasPrefix(s, "-") {
			return "-" + Group(s[1:])
		}
		return Group(s)
	}
	return printer.Sprintf("%d", rounded.IntPart())
}
