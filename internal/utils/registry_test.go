package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_BasicOperations(t *testing.T) {
	registry := NewRegistry[string, int]()
	assert.Equal(t, 0, registry.Size())

	replaced := registry.Register("key1", 42)
	assert.False(t, replaced)

	value, exists := registry.Get("key1")
	assert.True(t, exists)
	assert.Equal(t, 42, value)

	_, exists = registry.Get("nonexistent")
	assert.False(t, exists)
	assert.Equal(t, 1, registry.Size())
}

func TestRegistry_InsertionOrder(t *testing.T) {
	registry := NewRegistry[string, string]()
	registry.Register("c", "value_c")
	registry.Register("a", "value_a")
	registry.Register("b", "value_b")

	assert.Equal(t, []string{"c", "a", "b"}, registry.Keys())
}

func TestRegistry_ReplaceKeepsFirstPosition(t *testing.T) {
	registry := NewRegistry[string, int]()
	registry.Register("a", 1)
	registry.Register("b", 2)

	replaced := registry.Register("a", 3)
	assert.True(t, replaced)

	assert.Equal(t, []string{"a", "b"}, registry.Keys())
	value, _ := registry.Get("a")
	assert.Equal(t, 3, value, "last write wins")
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	registry := NewRegistry[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			registry.Register(n%10, n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, registry.Size())
	assert.Len(t, registry.Keys(), 10)
}
