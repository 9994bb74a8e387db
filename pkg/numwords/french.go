package numwords

import "strings"

var frenchUnits = [...]string{
	"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit",
	"neuf", "dix", "onze", "douze", "treize", "quatorze", "quinze", "seize",
}

var frenchTens = [...]string{
	"", "dix", "vingt", "trente", "quarante", "cinquante", "soixante",
}

var frenchScales = []scale{
	{1_000_000_000, "milliard"},
	{1_000_000, "million"},
	{1_000, "mille"},
}

// french uses the traditional spelling: "vingt et un", "quatre-vingts",
// "deux cents", invariable "mille".
type french struct{}

func (french) zero() string      { return frenchUnits[0] }
func (french) separator() string { return "virgule" }
func (french) minus() string     { return "moins" }

func (f french) integer(n int64) string {
	if n == 0 {
		return frenchUnits[0]
	}

	var parts []string
	for _, sc := range frenchScales {
		count := n / sc.value
		n %= sc.value
		switch {
		case count == 0:
			continue
		case sc.value == 1_000 && count == 1:
			parts = append(parts, "mille")
		case sc.value == 1_000:
			// plural marks of cent and vingt are dropped before mille
			parts = append(parts, f.group(count, false), "mille")
		default:
			name := sc.name
			if count > 1 {
				name += "s"
			}
			parts = append(parts, f.group(count, true), name)
		}
	}
	if n > 0 {
		parts = append(parts, frenchUnder1000(n, true))
	}
	return strings.Join(parts, " ")
}

func (f french) group(n int64, final bool) string {
	if n >= 1000 {
		return f.integer(n)
	}
	return frenchUnder1000(n, final)
}

func frenchUnder1000(n int64, final bool) string {
	hundreds, rest := n/100, n%100

	var parts []string
	switch {
	case hundreds == 1:
		parts = append(parts, "cent")
	case hundreds > 1:
		word := frenchUnits[hundreds] + " cent"
		if rest == 0 && final {
			word += "s"
		}
		parts = append(parts, word)
	}
	if rest > 0 {
		parts = append(parts, frenchUnder100(rest, final))
	}
	return strings.Join(parts, " ")
}

func frenchUnder100(n int64, final bool) string {
	if n < 17 {
		return frenchUnits[n]
	}
	if n < 20 {
		return "dix-" + frenchUnits[n-10]
	}

	tens, unit := n/10, n%10
	switch tens {
	case 7:
		if unit == 1 {
			return "soixante et onze"
		}
		return "soixante-" + frenchUnder100(10+unit, final)
	case 8:
		if unit == 0 {
			if final {
				return "quatre-vingts"
			}
			return "quatre-vingt"
		}
		return "quatre-vingt-" + frenchUnits[unit]
	case 9:
		return "quatre-vingt-" + frenchUnder100(10+unit, final)
	}

	switch unit {
	case 0:
		return frenchTens[tens]
	case 1:
		return frenchTens[tens] + " et un"
	default:
		return frenchTens[tens] + "-" + frenchUnits[unit]
	}
}
