package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set("test-key", "test-value")

		got, exists := cache.Get("test-key")
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "test-value" {
			t.Errorf("Expected %q, got %q", "test-value", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, exists := cache.Get("non-existent")
		if exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Overwrite existing key", func(t *testing.T) {
		cache.Set("overwrite-key", "value1")
		cache.Set("overwrite-key", "value2")

		got, exists := cache.Get("overwrite-key")
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "value2" {
			t.Errorf("Expected %q, got %q", "value2", got)
		}
	})
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Delete existing key", func(t *testing.T) {
		cache.Set("delete-key", "delete-value")
		cache.Delete("delete-key")

		if _, exists := cache.Get("delete-key"); exists {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Delete non-existent key", func(t *testing.T) {
		// Should not panic
		cache.Delete("non-existent")
	})
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache[string, int]()

	cache.Set("key1", 1)
	cache.Set("key2", 2)
	cache.Clear()

	_, exists1 := cache.Get("key1")
	_, exists2 := cache.Get("key2")
	if exists1 || exists2 {
		t.Error("Expected all keys to be cleared")
	}
}

func TestCache_SetTo(t *testing.T) {
	cache := NewCache[string, string]()
	cache.Set("old", "oldvalue")

	cache.SetTo(map[string]string{"new": "newvalue"})

	if _, exists := cache.Get("old"); exists {
		t.Error("Expected old items to be replaced")
	}
	if got, exists := cache.Get("new"); !exists || got != "newvalue" {
		t.Errorf("Expected %q, got %q", "newvalue", got)
	}
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[int, string]()
	const numGoroutines = 50
	const numOperations = 500

	var wg sync.WaitGroup

	// Writers
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				cache.Set(id*numOperations+j, fmt.Sprintf("value-%d-%d", id, j))
			}
		}(i)
	}

	// Readers
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				cache.Get(id*numOperations + j)
			}
		}(i)
	}

	wg.Wait()
}

func TestRenderedPostCache(t *testing.T) {
	ClearRenderedPostCache()

	t.Run("Set and get rendered post", func(t *testing.T) {
		html := []byte("<h1>Test</h1>")
		SetRenderedPost("test-hash", "gruvbox", html)

		cached, found := GetRenderedPost("test-hash", "gruvbox")
		if !found {
			t.Error("Expected cached content to be found")
		}
		if !bytes.Equal(cached, html) {
			t.Errorf("Expected HTML %q, got %q", string(html), string(cached))
		}
	})

	t.Run("Different content hash creates separate entries", func(t *testing.T) {
		SetRenderedPost("hash1", "gruvbox", []byte("<h1>One</h1>"))
		SetRenderedPost("hash2", "gruvbox", []byte("<h1>Two</h1>"))

		cached1, found1 := GetRenderedPost("hash1", "gruvbox")
		cached2, found2 := GetRenderedPost("hash2", "gruvbox")

		if !found1 || !found2 {
			t.Error("Expected both cached contents to be found")
		}
		if bytes.Equal(cached1, cached2) {
			t.Error("Expected different HTML content for different hashes")
		}
	})

	t.Run("Different syntax theme creates separate entries", func(t *testing.T) {
		SetRenderedPost("same-hash", "gruvbox", []byte("<pre>dark</pre>"))
		SetRenderedPost("same-hash", "catppuccin-latte", []byte("<pre>light</pre>"))

		cached1, found1 := GetRenderedPost("same-hash", "gruvbox")
		cached2, found2 := GetRenderedPost("same-hash", "catppuccin-latte")

		if !found1 || !found2 {
			t.Error("Expected both cached contents to be found")
		}
		if bytes.Equal(cached1, cached2) {
			t.Error("Expected different entries per theme")
		}
	})

	t.Run("Clear rendered post cache", func(t *testing.T) {
		SetRenderedPost("hash1", "theme1", []byte("html1"))
		ClearRenderedPostCache()

		if _, found := GetRenderedPost("hash1", "theme1"); found {
			t.Error("Expected all cached content to be cleared")
		}
	})
}

func BenchmarkCache_Set(b *testing.B) {
	cache := NewCache[int, string]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(i, fmt.Sprintf("value-%d", i))
	}
}

func BenchmarkCache_Get(b *testing.B) {
	cache := NewCache[int, string]()
	for i := 0; i < 10000; i++ {
		cache.Set(i, fmt.Sprintf("value-%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(i % 10000)
	}
}
