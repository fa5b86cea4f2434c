package invoice

import "strings"

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func belowThousand(n int64) string {
	var b strings.Builder
	if n > 99 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n = n % 100
	}
	if n > 19 {
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n = n % 10
	}
	if n > 0 {
		b.WriteString(ones[n])
	}
	return strings.TrimSpace(b.String())
}

// AmountInWordsはインド式の位取り（crore/lakh/thousand）で金額を英語に起こす。
// 0は "Zero only"。値がゼロの位は出さない。
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero only"
	}

	crore := n / 10000000
	lakh := (n / 100000) % 100
	thousand := (n / 1000) % 100
	rest := n % 1000

	parts := make([]string, 0, 4)
	if crore > 0 {
		parts = append(parts, belowThousand(crore)+" Crore")
	}
	if lakh > 0 {
		parts = append(parts, belowThousand(lakh)+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, belowThousand(thousand)+" Thousand")
	}
	if rest > 0 {
		parts = append(parts, belowThousand(rest))
	}

	return strings.Join(parts, " ") + " only"
}
