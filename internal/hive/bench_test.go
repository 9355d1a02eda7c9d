package hive

import (
	"testing"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// Compare runs with: go test -bench=. -count=10 ./internal/hive | benchstat

func BenchmarkTick(b *testing.B) {
	tuning := DefaultTuning()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := tuning.NewState(now)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = tuning.Tick(s, now.Add(time.Duration(i)*time.Second)).State
	}
}

func BenchmarkCatchUp_MaxOffline(b *testing.B) {
	tuning := DefaultTuning()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := tuning.NewState(start)
	now := start.Add(48 * time.Hour)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tuning.CatchUp(s, now)
	}
}

func BenchmarkSellResource(b *testing.B) {
	tuning := DefaultTuning()
	s := tuning.NewState(time.Now())
	s.Honey = 1e6

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tuning.SellResource(s, domain.ResourceHoney, 1.25)
	}
}
