package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00 RSD"},
		{350, "350,00 RSD"},
		{2850, "2.850,00 RSD"},
		{1234567.5, "1.234.567,50 RSD"},
		{999.99, "999,99 RSD"},
		{-1250, "-1.250,00 RSD"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRSD(decimal.NewFromFloat(tc.in)), "input %v", tc.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "450,00 RSD", FormatPrice(450))
}
