package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccept(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		raw   string
		ok    bool
	}{
		{name: "Grouped", input: "1,000", raw: "1000", ok: true},
		{name: "Plain", input: "25000000", raw: "25000000", ok: true},
		{name: "Empty", input: "", raw: "", ok: true},
		{name: "OnlySeparators", input: ",,", raw: "", ok: true},
		{name: "Letter", input: "1,000a", ok: false},
		{name: "Decimal", input: "10.5", ok: false},
		{name: "Negative", input: "-5", ok: false},
		{name: "Space", input: "1 000", ok: false},
		{name: "UnicodeDigit", input: "١٢", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Accept(tc.input)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.raw, raw)
		})
	}
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "", Group(""))
	assert.Equal(t, "7", Group("7"))
	assert.Equal(t, "999", Group("999"))
	assert.Equal(t, "1,000", Group("1000"))
	assert.Equal(t, "25,000,000", Group("25000000"))
	assert.Equal(t, "123,456,789,012,345,678,901", Group("123456789012345678901"))
}

func TestGroup_RoundTrip(t *testing.T) {
	for _, raw := range []string{"", "0", "007", "1000", "20200000", "20200001", "98765432109876543210"} {
		assert.Equal(t, raw, Strip(Group(raw)), "round trip for %q", raw)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(decimal.Zero))
	assert.Equal(t, "1,235", Number(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "40,143,675,000", Number(decimal.RequireFromString("40143675000")))
	assert.Equal(t, "12,345,678,901,234,567,890,123",
		Number(decimal.RequireFromString("12345678901234567890123.4")))
}
