package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"-1.005", "-1.01"},
		{"7.5", "7.5"},
	}
	for _, c := range cases {
		got := Round(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "Round(%s) = %s, want %s", c.in, got, c.want)
	}
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-3)).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
}

func TestSumAndMin(t *testing.T) {
	total := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, total.Equal(decimal.RequireFromString("0.3")))

	assert.True(t, Min(decimal.NewFromInt(80), decimal.NewFromInt(81)).Equal(decimal.NewFromInt(80)))
	assert.True(t, Sum().IsZero())
}

func TestPositivePtr(t *testing.T) {
	zero := decimal.Zero
	pos := decimal.NewFromInt(5)
	assert.False(t, PositivePtr(nil))
	assert.False(t, PositivePtr(&zero))
	assert.True(t, PositivePtr(&pos))
}
