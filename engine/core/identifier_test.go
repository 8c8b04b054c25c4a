package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierMonotonic(t *testing.T) {
	first := IdentifierAquireNewID()
	second := IdentifierAquireNewID()
	assert.Greater(t, second, first)
	assert.Equal(t, second, IdentifierLastID())
}

func TestIdentifierConcurrentUnique(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 1000

	var mu sync.Mutex
	seen := make(map[int32]bool, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]int32, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				ids = append(ids, IdentifierAquireNewID())
			}
			mu.Lock()
			for _, id := range ids {
				assert.False(t, seen[id], "id %d issued twice", id)
				seen[id] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
}
