package i18n

import (
	"strconv"

	"github.com/tatianab/wealth-quest/internal/models"
	"github.com/tatianab/wealth-quest/internal/money"
)

// Labeler renders log text in one language and display currency.
type Labeler struct {
	tr       *Translator
	lang     string
	fmt      *money.Formatter
	currency models.Currency
}

// NewLabeler binds a language and currency. It fails if the currency
// cannot be formatted.
func NewLabeler(tr *Translator, lang string, f *money.Formatter, cur models.Currency) (*Labeler, error) {
	if err := f.Check(cur); err != nil {
		return nil, err
	}
	return &Labeler{tr: tr, lang: lang, fmt: f, currency: cur}, nil
}

// Lang returns the bound language code.
func (l *Labeler) Lang() string { return l.lang }

// Currency returns the bound display currency.
func (l *Labeler) Currency() models.Currency { return l.currency }

// Text translates a message key.
func (l *Labeler) Text(key string, params map[string]any) string {
	return l.tr.T(l.lang, key, params)
}

// Name translates an entity name, using fallback when no table has it.
func (l *Labeler) Name(category, id, field, fallback string) string {
	if s, ok := l.tr.Lookup(l.lang, entityKey(category, id, field)); ok {
		return s
	}
	if fallback != "" {
		return fallback
	}
	return l.tr.Entity(l.lang, category, id, field)
}

// Money formats a base-unit amount in the bound currency.
func (l *Labeler) Money(amount float64) string {
	s, err := l.fmt.Format(amount, l.currency)
	if err != nil {
		// the currency was checked in NewLabeler, so amount is not finite
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}
	return s
}

// Compact formats a base-unit amount with a K/M/B suffix.
func (l *Labeler) Compact(amount float64) string {
	s, err := l.fmt.FormatCompact(amount, l.currency)
	if err != nil {
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}
	return s
}
