// Package numwords spells out amounts in words, the way they are written
// at the bottom of an invoice.
package numwords

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type speller interface {
	integer(n int64) string
	zero() string
	separator() string
	minus() string
}

var supported = []language.Tag{
	language.French,
	language.English,
}

var spellers = []speller{
	french{},
	english{},
}

var matcher = language.NewMatcher(supported)

func pick(locale string) speller {
	tag, err := language.Parse(locale)
	if err != nil {
		return spellers[0]
	}
	_, i, _ := matcher.Match(tag)
	return spellers[i]
}

// Convert spells amount rounded to two decimals in the language closest to
// locale. French is used for unknown locales.
//
// The decimal part is read as a number after dropping trailing zeros, with
// each leading zero spelled out: 12.05 is "douze virgule zéro cinq".
//
// NaN and infinities read as zero. Amounts whose integer part does not fit
// in an int64 are returned as digits with two decimals.
func Convert(amount float64, locale string) string {
	s := pick(locale)

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()
	d = d.Abs()

	intPart := d.Truncate(0)
	if !intPart.BigInt().IsInt64() {
		if negative {
			return s.minus() + " " + d.StringFixed(2)
		}
		return d.StringFixed(2)
	}

	whole := intPart.IntPart()
	cents := d.Sub(intPart).Shift(2).IntPart()

	words := s.integer(whole)
	if cents != 0 {
		digits := strings.TrimRight(fmt.Sprintf("%02d", cents), "0")
		var frac []string
		for len(digits) > 1 && digits[0] == '0' {
			frac = append(frac, s.zero())
			digits = digits[1:]
		}
		n, _ := strconv.ParseInt(digits, 10, 64)
		frac = append(frac, s.integer(n))
		words += " " + s.separator() + " " + strings.Join(frac, " ")
	}

	if negative {
		words = s.minus() + " " + words
	}
	return words
}

// Integer spells n in the language closest to locale.
func Integer(n int64, locale string) string {
	s := pick(locale)
	if n < 0 {
		return s.minus() + " " + s.integer(-n)
	}
	return s.integer(n)
}

type scale struct {
	value int64
	name  string
}
