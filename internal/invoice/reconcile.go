package invoice

import (
	"fmt"
	"strings"
)

// Policy decides which price drives the other when the tax rate changes.
type Policy string

const (
	// PolicyInclTax keeps TTC fixed on a rate change and recomputes HT.
	PolicyInclTax Policy = "incl-tax"
	// PolicyExclTax keeps HT fixed on a rate change and recomputes TTC. Every
	// structural change of the item list also re-derives TTC from HT.
	PolicyExclTax Policy = "excl-tax"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyInclTax, "":
		return PolicyInclTax, nil
	case PolicyExclTax:
		return PolicyExclTax, nil
	default:
		return "", fmt.Errorf("unknown reconcile policy %q", s)
	}
}

// Apply writes value into field and recomputes the one price that depends
// on it. The raw text of the edited field is kept as typed.
func (p Policy) Apply(item *LineItem, field Field, value string) {
	switch field {
	case FieldArticleType:
		item.ArticleType = value
	case FieldModel:
		item.Model = value
	case FieldDesignation:
		item.Designation = value
	case FieldColor:
		item.Color = value
	case FieldQuantity:
		item.Quantity = Number(value)
	case FieldPriceExclTax:
		item.PriceExclTax = Number(value)
	case FieldPriceInclTax:
		item.PriceInclTax = Number(value)
	case FieldTaxRate:
		item.TaxRate = Number(SanitizeRate(value))
	}

	factor := 1 + item.TaxRate.Float()/100

	switch {
	case field == FieldPriceInclTax,
		field == FieldTaxRate && p != PolicyExclTax:
		item.PriceExclTax = NumberOf(Divide(item.PriceInclTax.Float(), factor))
	case field == FieldPriceExclTax,
		field == FieldTaxRate && p == PolicyExclTax:
		item.PriceInclTax = NumberOf(Multiply(item.PriceExclTax.Float(), factor))
	}
}

// Settle re-derives TTC from HT and rate when the stored TTC disagrees.
func Settle(item *LineItem) {
	factor := 1 + item.TaxRate.Float()/100
	ttc := Multiply(item.PriceExclTax.Float(), factor)
	if ttc != item.PriceInclTax.Float() {
		item.PriceInclTax = NumberOf(ttc)
	}
}

// SanitizeRate keeps only the digits of a typed rate, dropping any "%".
func SanitizeRate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
