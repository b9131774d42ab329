// Package money renders listing prices for one configured locale and currency.
package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type placement int

const (
	prefixSpaced placement = iota // "€ 485.000"
	prefixTight                   // "$485,000"
	suffixSpaced                  // "485.000 €"
)

// placements maps a base language to where its currency symbol goes.
var placements = map[string]placement{
	"nl": prefixSpaced,
	"en": prefixTight,
	"de": suffixSpaced,
	"fr": suffixSpaced,
	"es": suffixSpaced,
	"it": suffixSpaced,
	"pt": suffixSpaced,
}

// Formatter formats whole-unit prices with zero fractional digits.
type Formatter struct {
	tag       language.Tag
	unit      currency.Unit
	printer   *message.Printer
	symbol    string
	placement placement
}

// NewFormatter validates locale (BCP 47, e.g. "nl-NL") and currency (ISO 4217, e.g. "EUR").
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	p := message.NewPrinter(tag)
	base, _ := tag.Base()
	pl, ok := placements[base.String()]
	if !ok {
		pl = prefixSpaced
	}

	return &Formatter{
		tag:       tag,
		unit:      unit,
		printer:   p,
		symbol:    p.Sprint(currency.NarrowSymbol(unit)),
		placement: pl,
	}, nil
}

// MustFormatter is NewFormatter for values known to be valid.
func MustFormatter(locale, currencyCode string) *Formatter {
	f, err := NewFormatter(locale, currencyCode)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders price, e.g. 485000 -> "€ 485.000" for nl-NL/EUR.
func (f *Formatter) Format(price int64) string {
	digits := f.printer.Sprintf("%d", price)
	switch f.placement {
	case prefixTight:
		return f.symbol + digits
	case suffixSpaced:
		return digits + " " + f.symbol
	default:
		return f.symbol + " " + digits
	}
}

// Locale returns the configured locale tag.
func (f *Formatter) Locale() string { return f.tag.String() }

// Currency returns the ISO code of the configured currency.
func (f *Formatter) Currency() string { return f.unit.String() }
