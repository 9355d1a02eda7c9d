package hive

import (
	"fmt"
	"math"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// CollectBonus grants a fixed slice of honey production, with a chance of
// finding one pollen and one propolis. rnd returns values in [0, 1).
func (t Tuning) CollectBonus(s domain.HiveState, rnd func() float64) Result {
	bonus := t.HoneyPerHour(s.HiveLevel, s.WorkerBeeCount) / SecondsPerHour * t.BonusSeconds

	next := s.Clone()
	next.Honey += bonus

	var found []string
	if rnd() < t.PollenChanceOnCollect {
		next.Pollen++
		found = append(found, "1 "+DisplayName(domain.ResourcePollen))
	}
	if rnd() < t.PropolisChanceOnCollect {
		next.Propolis++
		found = append(found, "1 "+DisplayName(domain.ResourcePropolis))
	}

	description := fmt.Sprintf("Added %s bonus honey.", fixed(bonus, 2))
	switch len(found) {
	case 1:
		description += fmt.Sprintf(" You also found: %s!", found[0])
	case 2:
		description += fmt.Sprintf(" You also found: %s and %s!", found[0], found[1])
	}

	return accepted(next, notice(domain.NotificationBonus, TitleBonusCollected, description))
}

// UpgradeHive spends BeeCoins to raise the hive level by one
func (t Tuning) UpgradeHive(s domain.HiveState) Result {
	cost := t.UpgradeCost(s.HiveLevel)
	if s.Currency < cost {
		return rejected(s, failure(domain.NotificationUpgrade, TitleNotEnoughCoins,
			fmt.Sprintf("You need %s BeeCoins to upgrade.", fixed(cost, 0))))
	}

	next := s.Clone()
	next.Currency -= cost
	next.HiveLevel++
	next = t.Refresh(next)

	return accepted(next, notice(domain.NotificationUpgrade, TitleHiveUpgraded,
		fmt.Sprintf("Hive is now level %d. Max bees increased to %d.", next.HiveLevel, next.MaxWorkerBeeCapacity)))
}

// AddWorkerBees buys up to requested bees. The full requested amount must be
// affordable, but only the bees that fit in the hive are charged for.
func (t Tuning) AddWorkerBees(s domain.HiveState, requested int) Result {
	if requested <= 0 {
		return rejected(s, failure(domain.NotificationInvalidAmount, TitleInvalidAmount,
			"Number of bees must be positive."))
	}

	cost := t.WorkerBeeCost * float64(requested)
	if s.Currency < cost {
		return rejected(s, failure(domain.NotificationWorkers, TitleNotEnoughCoins,
			fmt.Sprintf("You need %s BeeCoins.", fixed(cost, 0))))
	}

	actual := min(requested, t.MaxWorkerBees(s.HiveLevel)-s.WorkerBeeCount)
	if actual <= 0 {
		return rejected(s, failure(domain.NotificationWorkers, TitleHiveFull,
			"No more space for bees. Upgrade hive to increase capacity."))
	}

	next := s.Clone()
	next.Currency -= t.WorkerBeeCost * float64(actual)
	next.WorkerBeeCount += actual
	next = t.Refresh(next)

	res := accepted(next, notice(domain.NotificationWorkers, TitleWorkersAcquired,
		fmt.Sprintf("Added %d worker bees.", actual)))
	if actual < requested {
		res.Notifications = append(res.Notifications, notice(domain.NotificationWorkersPartial, TitleCapacityReached,
			fmt.Sprintf("Could only add %d bees. Upgrade hive for more space.", actual)))
	}
	return res
}

// SellResource sells amount of kind at the current market price.
// Earnings are rounded down to whole BeeCoins.
func (t Tuning) SellResource(s domain.HiveState, kind domain.ResourceKind, amount float64) Result {
	if !kind.Valid() {
		return rejected(s, failure(domain.NotificationRejected, TitleUnsupportedTrade,
			fmt.Sprintf("%q cannot be traded.", kind)))
	}

	amount = tradeAmount(kind, amount)
	if !(amount > 0) {
		return rejected(s, failure(domain.NotificationInvalidAmount, TitleInvalidAmount,
			"Amount to sell must be positive."))
	}

	holding := s.Holding(kind)
	if amount > holding && amount == tradeAmount(kind, holding) {
		// the whole holding, as displayed
		amount = holding
	}
	if holding < amount {
		return rejected(s, failure(domain.NotificationTrade, fmt.Sprintf("Not enough %s!", kind),
			fmt.Sprintf("You only have %s %s.", holdingText(kind, holding), kind)))
	}

	earnings := math.Floor(amount * s.Prices.Of(kind))
	next := s.Clone().WithHolding(kind, holding-amount)
	next.Currency += earnings

	return accepted(next, notice(domain.NotificationTrade, DisplayName(kind)+" Sold!",
		fmt.Sprintf("You earned %s BeeCoins.", fixed(earnings, 0))))
}

// BuyResource buys amount of kind at the current market price. Only honey
// is sold by the market; the cost is rounded down to whole BeeCoins.
func (t Tuning) BuyResource(s domain.HiveState, kind domain.ResourceKind, amount float64) Result {
	if kind != domain.ResourceHoney {
		return rejected(s, failure(domain.NotificationRejected, TitleUnsupportedTrade,
			"Only honey can be bought on the market."))
	}

	amount = roundTo2(amount)
	if !(amount > 0) {
		return rejected(s, failure(domain.NotificationInvalidAmount, TitleInvalidAmount,
			"Amount to buy must be positive."))
	}

	cost := math.Floor(amount * s.Prices.Honey)
	if s.Currency < cost {
		return rejected(s, failure(domain.NotificationTrade, TitleNotEnoughCoins,
			fmt.Sprintf("You need %s BeeCoins.", fixed(cost, 0))))
	}

	next := s.Clone()
	next.Honey += amount
	next.Currency -= cost

	return accepted(next, notice(domain.NotificationTrade, "Honey Purchased!",
		fmt.Sprintf("You bought %s honey for %s BeeCoins.", fixed(amount, 2), fixed(cost, 0))))
}
