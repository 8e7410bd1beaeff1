package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock("dr-a")
			defer km.Unlock("dr-a")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	km := New()

	km.Lock("dr-a")
	defer km.Unlock("dr-a")

	done := make(chan struct{})
	go func() {
		km.Lock("dr-b")
		km.Unlock("dr-b")
		close(done)
	}()

	// Завершится только если "dr-b" не ждёт "dr-a".
	<-done
}

func TestEntriesAreReleased(t *testing.T) {
	km := New()

	km.Lock("dr-a")
	km.Unlock("dr-a")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries)
}

func TestUnlockWithoutLockPanics(t *testing.T) {
	km := New()
	assert.Panics(t, func() { km.Unlock("dr-a") })
}
