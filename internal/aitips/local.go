package aitips

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/BuzzHive_Go/internal/hive"
)

// LocalAdvisor derives tips from the game balance without a remote model.
// It is used when no model API key is configured.
type LocalAdvisor struct {
	tuning hive.Tuning
}

// NewLocalAdvisor creates a local advisor for tuning
func NewLocalAdvisor(tuning hive.Tuning) *LocalAdvisor {
	return &LocalAdvisor{tuning: tuning}
}

// Optimize compares what a coin buys in bees and in hive levels
func (a *LocalAdvisor) Optimize(_ context.Context, req Request) (Response, error) {
	t := a.tuning
	level, bees := req.HiveLevel, req.WorkerBeeCount
	capacity := t.MaxWorkerBees(level)
	current := t.HoneyPerHour(level, bees)

	var tips, reasons []string

	free := capacity - bees
	if free > 0 {
		add := min(free, 10)
		gain := t.HoneyPerHour(level, bees+add) - current
		tips = append(tips, fmt.Sprintf("Recruit %d more worker bees for %.0f BeeCoins to gain about %.2f honey per hour.",
			add, t.WorkerBeeCost*float64(add), gain))
		reasons = append(reasons, fmt.Sprintf("Each bee adds %.2f honey per hour, and your hive has %d free slots.",
			t.BeeHoneyPerSecond*hive.SecondsPerHour, free))
	} else {
		tips = append(tips, fmt.Sprintf("Upgrade the hive to level %d for %.0f BeeCoins; it is full at %d bees.",
			level+1, t.UpgradeCost(level), capacity))
		reasons = append(reasons, "Bees can no longer be added until the hive grows, and the queen's births are lost at capacity.")
	}

	if bees < capacity/2 {
		reasons = append(reasons, fmt.Sprintf("With %d of %d slots used, bees are a cheaper source of honey than levels.", bees, capacity))
	} else {
		levelGain := t.HoneyPerHour(level+1, bees) - current
		tips = append(tips, fmt.Sprintf("Plan the level %d upgrade (%.0f BeeCoins): it raises capacity to %d and adds %.2f honey per hour on its own.",
			level+1, t.UpgradeCost(level), t.MaxWorkerBees(level+1), levelGain))
	}

	if req.AvailableResources.Pollen >= 10 || req.AvailableResources.Propolis >= 5 {
		tips = append(tips, fmt.Sprintf("Sell spare resources (%.0f pollen, %.0f propolis) when prices peak to fund more bees.",
			req.AvailableResources.Pollen, req.AvailableResources.Propolis))
		reasons = append(reasons, "Market prices are redrawn every 30 seconds, so waiting for a high draw earns more BeeCoins.")
	}

	tips = append(tips, "Collect the honey bonus often: each collection grants ten seconds of production and a chance of pollen or propolis.")

	if len(req.FlowerTypes) > 0 {
		reasons = append(reasons, fmt.Sprintf("Your bees forage on %s; a varied garden keeps the colony busy.",
			strings.Join(req.FlowerTypes, ", ")))
	}

	return Response{
		OptimizationTips: tips,
		Reasoning:        strings.Join(reasons, " "),
	}, nil
}
