package tui

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	price, ok := parsePrice("12,50")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("12.50")))

	price, ok = parsePrice(" 8.9 ")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("8.9")))

	price, ok = parsePrice("")
	require.True(t, ok)
	assert.True(t, price.IsZero())

	_, ok = parsePrice("abc")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	date, ok := parseDate("25/12/2026")
	require.True(t, ok)
	require.NotNil(t, date)
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), *date)

	date, ok = parseDate("  ")
	require.True(t, ok)
	assert.Nil(t, date)

	_, ok = parseDate("2026-12-25")
	assert.False(t, ok)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 37,50", formatMoney(decimal.RequireFromString("37.5")))
	assert.Equal(t, "R$ 0,00", formatMoney(decimal.Zero))
}
