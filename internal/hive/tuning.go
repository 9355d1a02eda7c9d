package hive

import "github.com/osse101/BuzzHive_Go/internal/domain"

// Tuning holds every balance constant that affects numeric outcomes.
// The zero value is not usable; start from DefaultTuning.
type Tuning struct {
	InitialHoney      float64
	InitialPollen     float64
	InitialPropolis   float64
	InitialCurrency   float64
	InitialHiveLevel  int
	InitialWorkerBees int
	InitialPrices     domain.Prices

	// Production per second
	BeeHoneyPerSecond     float64
	HiveHoneyPerSecond    float64
	BeePollenPerSecond    float64
	HivePollenPerSecond   float64
	HivePropolisPerSecond float64

	BonusSeconds            float64
	PollenChanceOnCollect   float64
	PropolisChanceOnCollect float64

	BaseUpgradeCost       float64
	UpgradeCostMultiplier float64
	WorkerBeeCost         float64

	BaseCapacity     int
	CapacityPerLevel int

	QueenInitiallyPresent bool
	QueenBirthInterval    float64 // seconds
	QueenBirthAmount      int

	MaxOfflineHours float64

	FlowerTypes []string
}

// DefaultTuning returns the standard game balance
func DefaultTuning() Tuning {
	return Tuning{
		InitialHoney:      InitialHoney,
		InitialPollen:     InitialPollen,
		InitialPropolis:   InitialPropolis,
		InitialCurrency:   InitialBeeCoins,
		InitialHiveLevel:  InitialHiveLevel,
		InitialWorkerBees: InitialWorkerBees,
		InitialPrices: domain.Prices{
			Honey:    InitialHoneyPrice,
			Pollen:   InitialPollenPrice,
			Propolis: InitialPropolisPrice,
		},

		BeeHoneyPerSecond:     BeeHoneyPerSecond,
		HiveHoneyPerSecond:    HiveHoneyPerSecond,
		BeePollenPerSecond:    BeePollenPerSecond,
		HivePollenPerSecond:   HivePollenPerSecond,
		HivePropolisPerSecond: HivePropolisPerSecond,

		BonusSeconds:            BonusSeconds,
		PollenChanceOnCollect:   PollenChanceOnCollect,
		PropolisChanceOnCollect: PropolisChanceOnCollect,

		BaseUpgradeCost:       BaseUpgradeCost,
		UpgradeCostMultiplier: UpgradeCostMultiplier,
		WorkerBeeCost:         WorkerBeeCost,

		BaseCapacity:     BaseMaxWorkerBees,
		CapacityPerLevel: MaxWorkerBeesPerLevel,

		QueenInitiallyPresent: QueenInitiallyPresent,
		QueenBirthInterval:    QueenBirthIntervalSeconds,
		QueenBirthAmount:      QueenBirthAmount,

		MaxOfflineHours: MaxOfflineHours,

		FlowerTypes: append([]string(nil), DefaultFlowerTypes...),
	}
}

// MaxOfflineSeconds is the cap applied to offline catch-up
func (t Tuning) MaxOfflineSeconds() float64 {
	return t.MaxOfflineHours * SecondsPerHour
}
