// Package money turns base-unit amounts into display strings for a
// selected currency. Amounts are always stored in the base unit; the
// conversion happens here and only here.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/tatianab/wealth-quest/internal/cache"
	"github.com/tatianab/wealth-quest/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrUnknownCurrency is returned for codes that are not ISO 4217.
var ErrUnknownCurrency = errors.New("money: unknown currency")

// ErrNotFinite is returned for NaN and infinite amounts.
var ErrNotFinite = errors.New("money: amount is not finite")

const printerCacheSize = 32

type layout struct {
	printer  *message.Printer
	symbol   string
	template string
}

// Formatter formats amounts. The zero value is not usable; use NewFormatter.
// It is safe for concurrent use.
type Formatter struct {
	layouts *cache.LRU[*layout]
}

// NewFormatter creates a Formatter with an empty cache.
func NewFormatter() *Formatter {
	return &Formatter{layouts: cache.NewLRU[*layout](printerCacheSize)}
}

// Convert applies the currency rate to a base-unit amount.
func Convert(amount float64, c models.Currency) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(c.Rate))
}

// Check reports whether the currency can be formatted.
func (f *Formatter) Check(c models.Currency) error {
	_, err := f.layout(c)
	return err
}

// Format converts amount into c and renders it with c's symbol, locale
// digit grouping and fixed number of decimals.
func (f *Formatter) Format(amount float64, c models.Currency) (string, error) {
	if err := checkFinite(amount, c); err != nil {
		return "", err
	}
	l, err := f.layout(c)
	if err != nil {
		return "", err
	}
	v := Convert(amount, c).Round(int32(c.Decimals))
	abs, _ := v.Abs().Float64()
	digits := l.printer.Sprint(number.Decimal(abs, number.Scale(c.Decimals)))
	return l.render(digits, v.IsNegative()), nil
}

// FormatCompact renders large amounts with a K, M or B suffix and at most
// one fractional digit. The suffix is picked after rounding, so 999,950
// renders as 1M.
func (f *Formatter) FormatCompact(amount float64, c models.Currency) (string, error) {
	if err := checkFinite(amount, c); err != nil {
		return "", err
	}
	l, err := f.layout(c)
	if err != nil {
		return "", err
	}
	v := Convert(amount, c)
	abs := v.Abs()
	suffix := ""
	for _, unit := range compactUnits {
		if scaled := abs.Div(unit.size).Round(1); scaled.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			abs, suffix = scaled, unit.suffix
			break
		}
	}
	if suffix == "" {
		abs = abs.Round(1)
	}
	f64, _ := abs.Float64()
	digits := l.printer.Sprint(number.Decimal(f64, number.MaxFractionDigits(1)))
	negative := v.IsNegative() && !abs.IsZero()
	return l.render(digits+suffix, negative), nil
}

var compactUnits = []struct {
	size   decimal.Decimal
	suffix string
}{
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 3), "K"},
}

func checkFinite(amount float64, c models.Currency) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("%w: %v", ErrNotFinite, amount)
	}
	return nil
}

func (l *layout) render(digits string, negative bool) string {
	s := strings.Replace(l.template, "1", digits, 1)
	s = strings.Replace(s, "$", l.symbol, 1)
	if negative {
		return "-" + s
	}
	return s
}

func (f *Formatter) layout(c models.Currency) (*layout, error) {
	key := fmt.Sprintf("%s-%s-%d", c.Locale, c.Code, c.Decimals)
	return f.layouts.GetOrCreate(key, func() (*layout, error) {
		iso := gomoney.GetCurrency(c.Code)
		if iso == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, c.Code)
		}
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return nil, fmt.Errorf("money: locale %q: %w", c.Locale, err)
		}
		symbol := c.Symbol
		if symbol == "" {
			symbol = iso.Grapheme
		}
		template := iso.Template
		if template == "" {
			template = "$1"
		}
		return &layout{
			printer:  message.NewPrinter(tag),
			symbol:   symbol,
			template: template,
		}, nil
	})
}
