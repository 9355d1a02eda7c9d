package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_WithLockSerializes(t *testing.T) {
	km := NewKeyedMutex()
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.WithLock("hive-a", func() { counter++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, km.Len(), "released keys are dropped")
}

func TestKeyedMutex_KeysAreIndependent(t *testing.T) {
	km := NewKeyedMutex()
	unlockA := km.Lock("hive-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		km.WithLock("hive-b", func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hive-b blocked behind hive-a")
	}
	assert.Equal(t, 1, km.Len())
}

func TestKeyedMutex_WaiterKeepsEntry(t *testing.T) {
	km := NewKeyedMutex()
	unlock := km.Lock("hive-a")

	acquired := make(chan func())
	go func() { acquired <- km.Lock("hive-a") }()

	require.Eventually(t, func() bool {
		km.mu.Lock()
		defer km.mu.Unlock()
		return km.locks["hive-a"] != nil && km.locks["hive-a"].refs == 2
	}, time.Second, 5*time.Millisecond)

	unlock()
	second := <-acquired
	assert.Equal(t, 1, km.Len())
	second()
	assert.Zero(t, km.Len())
}
