package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a currency amount in cents
type Money int64

// ParseMoney parses a decimal amount such as "1500", "1500.5" or "1500.50".
// At most two fractional digits are accepted. The sign is preserved so that
// callers can decide whether a negative amount is acceptable.
func ParseMoney(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is empty", ErrInvalidAmount)
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, raw)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}

	var units int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || v > maxWholeUnits {
			return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
		}
		units = v
	}

	var cents int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		v, _ := strconv.ParseInt(frac, 10, 64)
		cents = v
	}

	if units == maxWholeUnits && cents > maxCents%100 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}

	m := Money(units*100 + cents)
	if negative {
		m = -m
	}
	return m, nil
}

const (
	maxCents      = 1<<63 - 1
	maxWholeUnits = maxCents / 100
)

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Cents returns the raw integer value
func (m Money) Cents() int64 { return int64(m) }

// IsPositive reports whether the amount is greater than zero
func (m Money) IsPositive() bool { return m > 0 }

// String formats the amount with two decimal places, e.g. "1500.50"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
