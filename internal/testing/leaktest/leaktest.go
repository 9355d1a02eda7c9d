// Package leaktest fails tests that leave goroutines behind, such as a hive
// session loop or a worker that outlives Stop.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	// DefaultTimeout bounds how long Check waits for goroutines to exit
	DefaultTimeout = 2 * time.Second

	pollInterval = 5 * time.Millisecond
)

// Checker records the goroutine count when it is created
type Checker struct {
	t       testing.TB
	before  int
	timeout time.Duration
}

// New records the current goroutine count as the baseline for t
func New(t testing.TB) *Checker {
	t.Helper()
	return &Checker{t: t, before: runtime.NumGoroutine(), timeout: DefaultTimeout}
}

// Check waits until at most tolerance goroutines above the baseline are
// still running, and fails the test if that does not happen in time
func (c *Checker) Check(tolerance int) {
	c.t.Helper()

	if after, ok := Settle(c.before+tolerance, c.timeout); !ok {
		c.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", c.before, after, tolerance)
	}
}

// Check is shorthand for deferred use: defer leaktest.Check(t)()
func Check(t testing.TB) func() {
	t.Helper()
	c := New(t)
	return func() {
		t.Helper()
		c.Check(0)
	}
}

// Settle polls until the goroutine count is at most target or timeout
// passes. It returns the last count and whether target was reached.
func Settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
