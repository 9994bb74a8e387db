package numwords

import "strings"

var englishOnes = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var englishTens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var englishScales = []scale{
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

type english struct{}

func (english) zero() string      { return englishOnes[0] }
func (english) separator() string { return "point" }
func (english) minus() string     { return "minus" }

func (e english) integer(n int64) string {
	if n == 0 {
		return englishOnes[0]
	}

	var parts []string
	for _, sc := range englishScales {
		count := n / sc.value
		n %= sc.value
		if count == 0 {
			continue
		}
		if count >= 1000 {
			parts = append(parts, e.integer(count), sc.name)
		} else {
			parts = append(parts, englishUnder1000(count), sc.name)
		}
	}
	if n > 0 {
		parts = append(parts, englishUnder1000(n))
	}
	return strings.Join(parts, " ")
}

func englishUnder1000(n int64) string {
	hundreds, rest := n/100, n%100

	var parts []string
	if hundreds > 0 {
		parts = append(parts, englishOnes[hundreds], "hundred")
	}
	if rest > 0 {
		if rest < 20 {
			parts = append(parts, englishOnes[rest])
		} else if rest%10 == 0 {
			parts = append(parts, englishTens[rest/10])
		} else {
			parts = append(parts, englishTens[rest/10]+"-"+englishOnes[rest%10])
		}
	}
	return strings.Join(parts, " ")
}
