package hive

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// Result is the outcome of applying one reducer to a hive.
// Rejected operations return the previous state unchanged with Accepted false.
type Result struct {
	State         domain.HiveState
	Notifications []domain.Notification
	Accepted      bool
	Accrual       Accrual
}

func accepted(s domain.HiveState, notes ...domain.Notification) Result {
	return Result{State: s, Notifications: notes, Accepted: true}
}

func rejected(s domain.HiveState, note domain.Notification) Result {
	return Result{State: s, Notifications: []domain.Notification{note}}
}

func notice(kind domain.NotificationKind, title, description string) domain.Notification {
	return domain.Notification{Kind: kind, Title: title, Description: description, Variant: domain.VariantDefault}
}

func failure(kind domain.NotificationKind, title, description string) domain.Notification {
	return domain.Notification{Kind: kind, Title: title, Description: description, Variant: domain.VariantDestructive}
}

// NewState returns a fresh hive stamped at now
func (t Tuning) NewState(now time.Time) domain.HiveState {
	s := domain.HiveState{
		Honey:                      t.InitialHoney,
		Pollen:                     t.InitialPollen,
		Propolis:                   t.InitialPropolis,
		Currency:                   t.InitialCurrency,
		HiveLevel:                  t.InitialHiveLevel,
		WorkerBeeCount:             t.InitialWorkerBees,
		HasQueen:                   t.QueenInitiallyPresent,
		QueenBirthCountdownSeconds: t.QueenBirthInterval,
		Prices:                     t.InitialPrices,
		FlowerTypes:                append([]string(nil), t.FlowerTypes...),
		LastUpdated:                now,
	}
	return t.Refresh(s)
}

// Refresh recomputes capacity and display rates, clamping the bee count
func (t Tuning) Refresh(s domain.HiveState) domain.HiveState {
	s.MaxWorkerBeeCapacity = t.MaxWorkerBees(s.HiveLevel)
	if s.WorkerBeeCount > s.MaxWorkerBeeCapacity {
		s.WorkerBeeCount = s.MaxWorkerBeeCapacity
	}
	r := t.Rates(s.HiveLevel, s.WorkerBeeCount)
	s.HoneyPerHour = r.Honey
	s.PollenPerHour = r.Pollen
	s.PropolisPerHour = r.Propolis
	return s
}

// apply adds an accrual to s and stamps it at now. The timestamp never moves backwards.
func (t Tuning) apply(s domain.HiveState, a Accrual, now time.Time) domain.HiveState {
	s = s.Clone()
	s.Honey += a.Honey
	s.Pollen += a.Pollen
	s.Propolis += a.Propolis
	s.WorkerBeeCount += a.BeesBorn
	s.QueenBirthCountdownSeconds = a.QueenCountdown
	if now.After(s.LastUpdated) {
		s.LastUpdated = now
	}
	return t.Refresh(s)
}

// OfflineSeconds returns the whole seconds between the last update and now,
// capped at the offline limit
func (t Tuning) OfflineSeconds(s domain.HiveState, now time.Time) float64 {
	elapsed := math.Max(0, math.Floor(now.Sub(s.LastUpdated).Seconds()))
	return math.Min(elapsed, t.MaxOfflineSeconds())
}

// CatchUp credits the production earned while the hive was not running.
// Time beyond the offline cap is discarded.
func (t Tuning) CatchUp(s domain.HiveState, now time.Time) Result {
	a := t.Accrue(s, t.OfflineSeconds(s, now))
	next := t.apply(s, a, now)

	res := accepted(next)
	res.Accrual = a
	if a.Produced() {
		res.Notifications = append(res.Notifications,
			notice(domain.NotificationOfflineSummary, TitleWelcomeBack, offlineSummary(a)))
	}
	return res
}

// Tick advances an active hive by exactly one second
func (t Tuning) Tick(s domain.HiveState, now time.Time) Result {
	a := t.Accrue(s, 1)
	next := t.apply(s, a, now)

	res := accepted(next)
	res.Accrual = a
	if a.BeesBorn > 0 {
		res.Notifications = append(res.Notifications, notice(domain.NotificationQueenBirth, TitleNewBee,
			fmt.Sprintf("The Queen has blessed the hive with %d new worker bee(s).", t.QueenBirthAmount)))
	}
	return res
}

func offlineSummary(a Accrual) string {
	var parts []string
	if a.Honey > 0 {
		parts = append(parts, fixed(a.Honey, 2)+" honey")
	}
	if a.Pollen > 0 {
		parts = append(parts, fixed(a.Pollen, 0)+" pollen")
	}
	if a.Propolis > 0 {
		parts = append(parts, fixed(a.Propolis, 0)+" propolis")
	}
	if a.BeesBorn > 0 {
		parts = append(parts, fmt.Sprintf("%d new bees", a.BeesBorn))
	}
	return fmt.Sprintf("You produced %s while you were away.", strings.Join(parts, ", "))
}
