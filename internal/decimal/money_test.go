package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "100.50", "100.5", true},
		{"whitespace", "  42 ", "42", true},
		{"decimal comma", "19,00", "19", true},
		{"negative", "-3.25", "-3.25", true},
		{"empty", "", "0", false},
		{"garbage", "abc", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decimal.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(dec.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParsePtr(t *testing.T) {
	assert.Nil(t, decimal.ParsePtr(""))
	p := decimal.ParsePtr("1.5")
	require.NotNil(t, p)
	assert.Equal(t, "1.5", p.String())
}

func TestFormat(t *testing.T) {
	d := dec.RequireFromString("1234.5")
	assert.Equal(t, "1234.50", decimal.Format(d, decimal.AmountScale))
	assert.Equal(t, "1234.5000", decimal.Format(d, decimal.PriceScale))
	assert.Equal(t, "1234.5000", decimal.Format(d, decimal.QuantityScale))
	assert.Equal(t, "19.00", decimal.Format(dec.NewFromInt(19), decimal.PercentScale))
	assert.Equal(t, "0.13", decimal.Format(dec.RequireFromString("0.125"), decimal.AmountScale))
}

func TestRound(t *testing.T) {
	assert.Equal(t, "33.33", decimal.Round(dec.RequireFromString("33.3333")).String())
	assert.Equal(t, "0.13", decimal.Round(dec.RequireFromString("0.125")).String())
}

func TestPercentage(t *testing.T) {
	got := decimal.Percentage(dec.RequireFromString("123.45"), dec.NewFromInt(19))
	assert.Equal(t, "23.46", got.StringFixed(2))
	assert.True(t, decimal.Percentage(dec.NewFromInt(100), dec.Zero).IsZero())
}

func TestValue(t *testing.T) {
	assert.True(t, decimal.Value(nil).IsZero())
	d := dec.RequireFromString("1.50")
	assert.True(t, decimal.Value(&d).Equal(d))
}
