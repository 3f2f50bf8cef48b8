package cct

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("CCT-AB12-CD34")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 {
		t.Errorf("expected limit 1, got %v", limiter.Limit())
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 limiter, got %d", store.Len())
	}
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("CCT-AB12-CD35", 5, 10)
	limiter := store.GetLimiter("CCT-AB12-CD35")

	if limiter.Limit() != 5 {
		t.Errorf("expected limit 5, got %v", limiter.Limit())
	}
	if limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %v", limiter.Burst())
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	deviceID := uuid.NewString()

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter := store.GetLimiter(deviceID); limiter == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	if store.Len() != 1 {
		t.Errorf("expected a single limiter for the device, got %d", store.Len())
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2)
	deviceID := uuid.NewString()

	if !store.Allow(deviceID) || !store.Allow(deviceID) {
		t.Fatal("expected first two calls to be allowed")
	}
	if store.Allow(deviceID) {
		t.Error("expected third call to be rate limited")
	}

	// other devices have their own budget
	if !store.Allow(uuid.NewString()) {
		t.Error("expected a fresh device to be allowed")
	}

	time.Sleep(600 * time.Millisecond)
	if !store.Allow(deviceID) {
		t.Error("expected call to be allowed after refill")
	}
}
