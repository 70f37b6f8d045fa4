package tui

import (
	"strings"
	"time"

	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/shopspring/decimal"
)

// errMsg carries any failed operation back to the screen that issued it.
type errMsg struct {
	err error
}

func (m errMsg) status() string {
	return dangerStyle.Render("Erro: " + pkgerrors.UserMessage(m.err))
}

func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.Zero, true
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

// parseDate accepts the dd/mm/yyyy format the screens have always used.
func parseDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("02/01/2006", raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func formatMoney(value decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(value.StringFixed(2), ".", ",")
}
