package snapshot

import (
	"math"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/hive"
)

// document is the single persisted shape of a hive. Every field is optional
// on read so blobs written before a field existed still load; absent fields
// take their starting value. Keys match the browser save format so exported
// local saves can be imported unchanged.
type document struct {
	Honey    *float64 `json:"honey,omitempty"`
	Pollen   *float64 `json:"pollen,omitempty"`
	Propolis *float64 `json:"propolis,omitempty"`
	BeeCoins *float64 `json:"beeCoins,omitempty"`

	HiveLevel  *int `json:"hiveLevel,omitempty"`
	WorkerBees *int `json:"workerBees,omitempty"`

	HasQueen              *bool    `json:"hasQueen,omitempty"`
	QueenBeeBirthCooldown *float64 `json:"queenBeeBirthCooldown,omitempty"`

	HoneyPrice    *float64 `json:"honeyPrice,omitempty"`
	PollenPrice   *float64 `json:"pollenPrice,omitempty"`
	PropolisPrice *float64 `json:"propolisPrice,omitempty"`

	FlowerTypes []string `json:"flowerTypes,omitempty"`

	// Unix milliseconds
	LastUpdated *int64 `json:"lastUpdated,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func toDocument(s domain.HiveState) document {
	return document{
		Honey:                 ptr(s.Honey),
		Pollen:                ptr(s.Pollen),
		Propolis:              ptr(s.Propolis),
		BeeCoins:              ptr(s.Currency),
		HiveLevel:             ptr(s.HiveLevel),
		WorkerBees:            ptr(s.WorkerBeeCount),
		HasQueen:              ptr(s.HasQueen),
		QueenBeeBirthCooldown: ptr(s.QueenBirthCountdownSeconds),
		HoneyPrice:            ptr(s.Prices.Honey),
		PollenPrice:           ptr(s.Prices.Pollen),
		PropolisPrice:         ptr(s.Prices.Propolis),
		FlowerTypes:           append([]string(nil), s.FlowerTypes...),
		LastUpdated:           ptr(s.LastUpdated.UnixMilli()),
	}
}

// orDefault returns *v when present and usable, else def
func orDefault(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return def
	}
	return *v
}

// toState fills every absent or unusable field from the tuning defaults.
// A missing timestamp becomes now, so an undated save earns no offline time.
func (d document) toState(t hive.Tuning, now time.Time) domain.HiveState {
	s := t.NewState(now)

	s.Honey = orDefault(d.Honey, s.Honey)
	s.Pollen = orDefault(d.Pollen, s.Pollen)
	s.Propolis = orDefault(d.Propolis, s.Propolis)
	s.Currency = orDefault(d.BeeCoins, s.Currency)

	if d.HiveLevel != nil && *d.HiveLevel >= 1 {
		s.HiveLevel = min(*d.HiveLevel, hive.MaxHiveLevel)
	}
	if d.WorkerBees != nil && *d.WorkerBees >= 0 {
		s.WorkerBeeCount = *d.WorkerBees
	}
	if d.HasQueen != nil {
		s.HasQueen = *d.HasQueen
	}
	if d.QueenBeeBirthCooldown != nil && *d.QueenBeeBirthCooldown > 0 {
		s.QueenBirthCountdownSeconds = math.Min(*d.QueenBeeBirthCooldown, t.QueenBirthInterval)
	}

	s.Prices.Honey = orDefault(d.HoneyPrice, s.Prices.Honey)
	s.Prices.Pollen = orDefault(d.PollenPrice, s.Prices.Pollen)
	s.Prices.Propolis = orDefault(d.PropolisPrice, s.Prices.Propolis)

	if len(d.FlowerTypes) > 0 {
		s.FlowerTypes = append([]string(nil), d.FlowerTypes...)
	}
	if d.LastUpdated != nil {
		s.LastUpdated = time.UnixMilli(*d.LastUpdated).UTC()
	}

	return t.Refresh(s)
}
