package hive

import "github.com/osse101/BuzzHive_Go/internal/domain"

// Accrual is the outcome of converting elapsed time into production
type Accrual struct {
	Honey          float64
	Pollen         float64
	Propolis       float64
	BeesBorn       int
	QueenCountdown float64
}

// Produced reports whether anything was produced or born
func (a Accrual) Produced() bool {
	return a.Honey > 0 || a.Pollen > 0 || a.Propolis > 0 || a.BeesBorn > 0
}

// Accrue computes the production of s over elapsedSeconds.
//
// Rates come from the level and bee count at the start of the interval;
// bees born during the interval do not raise production until the next call.
// Queen births consume the elapsed budget one interval at a time and each
// birth is checked against capacity on its own, so interval time spent while
// the hive is full is used up without producing a bee.
func (t Tuning) Accrue(s domain.HiveState, elapsedSeconds float64) Accrual {
	out := Accrual{QueenCountdown: s.QueenBirthCountdownSeconds}
	if elapsedSeconds <= 0 {
		return out
	}

	perSecond := t.Rates(s.HiveLevel, s.WorkerBeeCount).PerSecond()
	out.Honey = perSecond.Honey * elapsedSeconds
	out.Pollen = perSecond.Pollen * elapsedSeconds
	out.Propolis = perSecond.Propolis * elapsedSeconds

	if !s.HasQueen || t.QueenBirthInterval <= 0 {
		return out
	}

	capacity := t.MaxWorkerBees(s.HiveLevel)
	budget := elapsedSeconds
	countdown := s.QueenBirthCountdownSeconds
	for budget > 0 {
		if budget < countdown {
			countdown -= budget
			break
		}
		if s.WorkerBeeCount+out.BeesBorn < capacity {
			out.BeesBorn += t.QueenBirthAmount
		}
		budget -= countdown
		countdown = t.QueenBirthInterval
	}
	out.QueenCountdown = countdown

	return out
}
