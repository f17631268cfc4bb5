package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords transcribes a rupee amount using the Indian numbering system:
// "Rupees <words> and <words> Paise Only", with the paise clause omitted when
// the fraction is zero.
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Abs().Round(2)
	rupees := rounded.IntPart()
	paise := rounded.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var sb strings.Builder
	sb.WriteString("Rupees ")
	if rupees == 0 {
		sb.WriteString("Zero")
	} else {
		sb.WriteString(numberToWords(rupees))
	}
	if paise > 0 {
		sb.WriteString(" and ")
		sb.WriteString(numberToWords(paise))
		sb.WriteString(" Paise")
	}
	sb.WriteString(" Only")
	return sb.String()
}

// numberToWords renders a positive integer with crore/lakh/thousand grouping.
// Amounts of 100 crore and above recurse on the crore count.
func numberToWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string
	if crores := n / 10_000_000; crores > 0 {
		parts = append(parts, numberToWords(crores), "Crore")
		n %= 10_000_000
	}
	if lakhs := n / 100_000; lakhs > 0 {
		parts = append(parts, belowThousand(lakhs), "Lakh")
		n %= 100_000
	}
	if thousands := n / 1_000; thousands > 0 {
		parts = append(parts, belowThousand(thousands), "Thousand")
		n %= 1_000
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
