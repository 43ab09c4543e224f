package currency

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD renders an amount as "$1,234.50".
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := fmt.Sprintf("%d", cents/100)
	result := fmt.Sprintf("$%s.%02d", addThousandsSeparator(whole, ","), cents%100)

	if negative {
		result = "-" + result
	}
	return result
}

// FormatPoints renders a points amount as "15,000 pts".
func FormatPoints(points int) string {
	s := fmt.Sprintf("%d", points)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	s = addThousandsSeparator(s, ",")
	if negative {
		s = "-" + s
	}
	return s + " pts"
}

// FormatCents renders a CPP value as "1.16¢".
func FormatCents(cpp float64) string {
	return fmt.Sprintf("%.2f¢", cpp)
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
