package domain

import (
	"slices"
	"time"
)

// ResourceKind identifies a tradeable hive resource
type ResourceKind string

const (
	ResourceHoney    ResourceKind = "honey"
	ResourcePollen   ResourceKind = "pollen"
	ResourcePropolis ResourceKind = "propolis"
)

// ResourceKinds lists every resource in display order
var ResourceKinds = []ResourceKind{ResourceHoney, ResourcePollen, ResourcePropolis}

// Valid reports whether k names a known resource
func (k ResourceKind) Valid() bool {
	return slices.Contains(ResourceKinds, k)
}

// Continuous reports whether the resource trades in fractional amounts.
// Honey is traded to two decimals, the others in whole units.
func (k ResourceKind) Continuous() bool {
	return k == ResourceHoney
}

// Prices holds the current market unit price of each resource in BeeCoins
type Prices struct {
	Honey    float64 `json:"honey"`
	Pollen   float64 `json:"pollen"`
	Propolis float64 `json:"propolis"`
}

// Of returns the price for the given resource
func (p Prices) Of(kind ResourceKind) float64 {
	switch kind {
	case ResourceHoney:
		return p.Honey
	case ResourcePollen:
		return p.Pollen
	case ResourcePropolis:
		return p.Propolis
	default:
		return 0
	}
}

// HiveState is the complete state of one hive.
// Values are copied between owners; FlowerTypes must be cloned with Clone.
type HiveState struct {
	Honey    float64 `json:"honey"`
	Pollen   float64 `json:"pollen"`
	Propolis float64 `json:"propolis"`
	Currency float64 `json:"currency"`

	HiveLevel            int `json:"hive_level"`
	WorkerBeeCount       int `json:"worker_bee_count"`
	MaxWorkerBeeCapacity int `json:"max_worker_bee_capacity"`

	HasQueen                   bool    `json:"has_queen"`
	QueenBirthCountdownSeconds float64 `json:"queen_birth_countdown_seconds"`

	Prices      Prices   `json:"prices"`
	FlowerTypes []string `json:"flower_types"`

	// Display rates per hour, derived from level and bee count
	HoneyPerHour    float64 `json:"honey_per_hour"`
	PollenPerHour   float64 `json:"pollen_per_hour"`
	PropolisPerHour float64 `json:"propolis_per_hour"`

	LastUpdated time.Time `json:"last_updated"`
}

// Clone returns a deep copy of the state
func (s HiveState) Clone() HiveState {
	s.FlowerTypes = slices.Clone(s.FlowerTypes)
	return s
}

// Holding returns the amount held of the given resource
func (s HiveState) Holding(kind ResourceKind) float64 {
	switch kind {
	case ResourceHoney:
		return s.Honey
	case ResourcePollen:
		return s.Pollen
	case ResourcePropolis:
		return s.Propolis
	default:
		return 0
	}
}

// WithHolding returns a copy of s with the given resource set to amount
func (s HiveState) WithHolding(kind ResourceKind, amount float64) HiveState {
	switch kind {
	case ResourceHoney:
		s.Honey = amount
	case ResourcePollen:
		s.Pollen = amount
	case ResourcePropolis:
		s.Propolis = amount
	}
	return s
}

// Hive pairs a hive identifier with its state
type Hive struct {
	ID    string    `json:"id"`
	State HiveState `json:"state"`
}
