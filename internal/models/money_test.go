package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Money
	}{
		{"1500", 150000},
		{"1500.5", 150050},
		{"1500.50", 150050},
		{" 0.07 ", 7},
		{".5", 50},
		{"3.", 300},
		{"+12", 1200},
		{"-4.25", -425},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMoney(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "R100", "1,000", "1.234", "1e3", ".", "-", "12.3.4", "99999999999999999999"} {
		_, err := ParseMoney(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, raw)
	}
}

func TestMoneyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1500.50", Money(150050).String())
	assert.Equal(t, "0.07", Money(7).String())
	assert.Equal(t, "-4.25", Money(-425).String())
	assert.Equal(t, "0.00", Money(0).String())
}
