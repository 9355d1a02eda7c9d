package hive

import "math"

// Rates are production rates per hour
type Rates struct {
	Honey    float64 `json:"honey"`
	Pollen   float64 `json:"pollen"`
	Propolis float64 `json:"propolis"`
}

// PerSecond converts hourly rates to per-second increments
func (r Rates) PerSecond() Rates {
	return Rates{
		Honey:    r.Honey / SecondsPerHour,
		Pollen:   r.Pollen / SecondsPerHour,
		Propolis: r.Propolis / SecondsPerHour,
	}
}

// HoneyPerHour returns honey production per hour
func (t Tuning) HoneyPerHour(level, bees int) float64 {
	return (float64(bees)*t.BeeHoneyPerSecond + float64(level)*t.HiveHoneyPerSecond) * SecondsPerHour
}

// PollenPerHour returns pollen production per hour
func (t Tuning) PollenPerHour(level, bees int) float64 {
	return (float64(bees)*t.BeePollenPerSecond + float64(level)*t.HivePollenPerSecond) * SecondsPerHour
}

// PropolisPerHour returns propolis production per hour. Bees do not affect it.
func (t Tuning) PropolisPerHour(level int) float64 {
	return float64(level) * t.HivePropolisPerSecond * SecondsPerHour
}

// Rates returns all hourly rates for a hive
func (t Tuning) Rates(level, bees int) Rates {
	return Rates{
		Honey:    t.HoneyPerHour(level, bees),
		Pollen:   t.PollenPerHour(level, bees),
		Propolis: t.PropolisPerHour(level),
	}
}

// MaxWorkerBees returns the worker capacity of a hive at the given level
func (t Tuning) MaxWorkerBees(level int) int {
	level = min(max(level, 1), MaxHiveLevel)
	return t.BaseCapacity + (level-1)*t.CapacityPerLevel
}

// UpgradeCost returns the BeeCoin cost of upgrading from the given level
func (t Tuning) UpgradeCost(level int) float64 {
	return t.BaseUpgradeCost * math.Pow(t.UpgradeCostMultiplier, float64(level-1))
}
