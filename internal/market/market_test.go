package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

func TestRedraw_StaysWithinBounds(t *testing.T) {
	m := New(DefaultRanges())

	for i := 0; i < 1000; i++ {
		p := m.Redraw()
		assert.GreaterOrEqual(t, p.Honey, 5.0)
		assert.LessOrEqual(t, p.Honey, 25.0)
		assert.GreaterOrEqual(t, p.Pollen, 2.0)
		assert.LessOrEqual(t, p.Pollen, 10.0)
		assert.GreaterOrEqual(t, p.Propolis, 10.0)
		assert.LessOrEqual(t, p.Propolis, 30.0)
	}
}

func TestRedraw_UsesRangePerResource(t *testing.T) {
	var calls []Range
	m := NewWithSource(DefaultRanges(), func(min, max int) int {
		calls = append(calls, Range{Min: min, Max: max})
		return max
	})

	p := m.Redraw()

	assert.Equal(t, domain.Prices{Honey: 25, Pollen: 10, Propolis: 30}, p)
	assert.Equal(t, []Range{{5, 25}, {2, 10}, {10, 30}}, calls)
}

func TestFluctuate_OnlyTouchesPrices(t *testing.T) {
	m := NewWithSource(DefaultRanges(), func(min, _ int) int { return min })
	s := domain.HiveState{
		Honey:       3,
		HiveLevel:   2,
		FlowerTypes: []string{"Clover"},
		LastUpdated: time.Unix(100, 0),
	}

	next := m.Fluctuate(s)

	assert.Equal(t, domain.Prices{Honey: 5, Pollen: 2, Propolis: 10}, next.Prices)
	next.Prices = s.Prices
	assert.Equal(t, s, next)
}
