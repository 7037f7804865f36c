// File: /services/code_store_test.go
package services

import (
	"testing"
	"time"
)

func TestMemoryCodeStore(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		store := NewMemoryCodeStore(time.Hour)
		defer store.Stop()

		store.Put("a@example.com", VerificationCode{
			Code:      "123456",
			Email:     "a@example.com",
			ExpiresAt: time.Now().Add(10 * time.Minute),
		})

		code, exists := store.Get("a@example.com")
		if !exists || code.Code != "123456" {
			t.Fatalf("expected stored code, got %+v exists=%v", code, exists)
		}

		if _, exists := store.Get("b@example.com"); exists {
			t.Error("expected miss for unknown email")
		}
	})

	t.Run("mark used", func(t *testing.T) {
		store := NewMemoryCodeStore(time.Hour)
		defer store.Stop()

		store.Put("a@example.com", VerificationCode{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)})
		store.MarkUsed("a@example.com")

		code, _ := store.Get("a@example.com")
		if !code.Used {
			t.Error("expected code to be marked used")
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := NewMemoryCodeStore(time.Hour)
		defer store.Stop()

		store.Put("a@example.com", VerificationCode{Code: "123456"})
		store.Delete("a@example.com")

		if _, exists := store.Get("a@example.com"); exists {
			t.Error("expected code to be deleted")
		}
	})

	t.Run("cleanup evicts expired and used codes", func(t *testing.T) {
		store := NewMemoryCodeStore(time.Hour)
		defer store.Stop()

		store.Put("expired@example.com", VerificationCode{Code: "1", ExpiresAt: time.Now().Add(-time.Minute)})
		store.Put("used@example.com", VerificationCode{Code: "2", ExpiresAt: time.Now().Add(time.Minute), Used: true})
		store.Put("live@example.com", VerificationCode{Code: "3", ExpiresAt: time.Now().Add(time.Minute)})

		store.cleanup()

		if _, exists := store.Get("expired@example.com"); exists {
			t.Error("expected expired code to be evicted")
		}
		if _, exists := store.Get("used@example.com"); exists {
			t.Error("expected used code to be evicted")
		}
		if _, exists := store.Get("live@example.com"); !exists {
			t.Error("expected live code to survive cleanup")
		}
	})
}
