package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shoplens/backend/internal/domain"
)

func sampleResult(description string) *domain.SearchResult {
	return &domain.SearchResult{
		Products:    []domain.Product{{Name: "iPhone 13", Brand: "Apple", Category: "Electronics"}},
		Description: description,
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	want := sampleResult("Exact matches")
	if err := cache.Set(ctx, "search:iphone:5", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "search:iphone:5")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Error("Get() returned a different value than stored")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "absent")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "short-lived", sampleResult("x"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, err := cache.Get(ctx, "short-lived"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
	}
	if exists, _ := cache.Exists(ctx, "short-lived"); exists {
		t.Error("Exists() = true for an expired entry")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "key", sampleResult("x"), time.Minute)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := cache.Get(ctx, "key"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Error("Get() after delete should miss")
	}
}

func TestMemoryCacheExists(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if exists, _ := cache.Exists(ctx, "key"); exists {
		t.Error("Exists() = true before Set")
	}
	cache.Set(ctx, "key", sampleResult("x"), time.Minute)
	if exists, _ := cache.Exists(ctx, "key"); !exists {
		t.Error("Exists() = false after Set")
	}
}

func TestMemoryCacheSizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "a", sampleResult("a"), time.Minute)
	cache.Set(ctx, "b", sampleResult("b"), time.Minute)
	if got := cache.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}

	cache.Clear()
	if got := cache.Size(); got != 0 {
		t.Errorf("Size() after Clear = %d, want 0", got)
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				cache.Set(ctx, "shared", sampleResult("x"), time.Minute)
				cache.Get(ctx, "shared")
				cache.Exists(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
