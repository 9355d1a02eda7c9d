// Package market redraws resource prices on a fixed cadence.
package market

import (
	"time"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/utils"
)

// DefaultInterval is how often prices are redrawn
const DefaultInterval = 30 * time.Second

// Range bounds a price, both ends inclusive
type Range struct {
	Min int
	Max int
}

// Ranges holds the price range of every resource
type Ranges struct {
	Honey    Range
	Pollen   Range
	Propolis Range
}

// DefaultRanges returns the standard price bounds
func DefaultRanges() Ranges {
	return Ranges{
		Honey:    Range{Min: 5, Max: 25},
		Pollen:   Range{Min: 2, Max: 10},
		Propolis: Range{Min: 10, Max: 30},
	}
}

// Market draws prices from a random integer source
type Market struct {
	ranges  Ranges
	randInt func(min, max int) int
}

// New creates a market backed by utils.RandomInt
func New(ranges Ranges) *Market {
	return NewWithSource(ranges, utils.RandomInt)
}

// NewWithSource creates a market with an injected random source.
// randInt must return an integer in [min, max].
func NewWithSource(ranges Ranges, randInt func(min, max int) int) *Market {
	return &Market{ranges: ranges, randInt: randInt}
}

// Redraw returns a fresh, independent price for every resource
func (m *Market) Redraw() domain.Prices {
	return domain.Prices{
		Honey:    float64(m.randInt(m.ranges.Honey.Min, m.ranges.Honey.Max)),
		Pollen:   float64(m.randInt(m.ranges.Pollen.Min, m.ranges.Pollen.Max)),
		Propolis: float64(m.randInt(m.ranges.Propolis.Min, m.ranges.Propolis.Max)),
	}
}

// Fluctuate returns s with newly drawn prices. Nothing else changes.
func (m *Market) Fluctuate(s domain.HiveState) domain.HiveState {
	s = s.Clone()
	s.Prices = m.Redraw()
	return s
}
