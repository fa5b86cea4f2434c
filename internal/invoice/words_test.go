package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "Zero only"},
		{1, "One only"},
		{19, "Nineteen only"},
		{20, "Twenty only"},
		{21, "Twenty One only"},
		{100, "One Hundred only"},
		{105, "One Hundred Five only"},
		{999, "Nine Hundred Ninety Nine only"},
		{1000, "One Thousand only"},
		{1001, "One Thousand One only"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine only"},
		{100000, "One Lakh only"},
		{123456, "One Lakh Twenty Three Thousand Four Hundred Fifty Six only"},
		{10000000, "One Crore only"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight only"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AmountInWords(c.n), "n=%d", c.n)
	}
}
