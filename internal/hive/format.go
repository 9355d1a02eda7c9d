package hive

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// fixed formats v with the given number of decimal places
func fixed(v float64, places int32) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// roundTo2 rounds v to two decimal places. NaN and infinities pass through
// unchanged so the caller's range checks reject them.
func roundTo2(v float64) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// tradeAmount normalizes a trade amount for the resource: two decimals for
// honey, whole units for everything else
func tradeAmount(kind domain.ResourceKind, amount float64) float64 {
	if kind.Continuous() {
		return roundTo2(amount)
	}
	return math.Floor(amount)
}

// holdingText formats a holding with the precision the resource trades at
func holdingText(kind domain.ResourceKind, amount float64) string {
	if kind.Continuous() {
		return fixed(amount, 2)
	}
	return fixed(amount, 0)
}

// DisplayName returns the capitalized resource name.
// Casers carry state, so each call gets its own.
func DisplayName(kind domain.ResourceKind) string {
	return cases.Title(language.English).String(string(kind))
}
