// File: /services/code_store.go
package services

import (
	"sync"
	"time"
)

type VerificationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// CodeStore holds verification codes keyed by email. It is injected
// into the email service so deployments can swap the in-memory store
// for a shared one without touching callers.
type CodeStore interface {
	Get(email string) (VerificationCode, bool)
	Put(email string, code VerificationCode)
	MarkUsed(email string)
	Delete(email string)
}

// MemoryCodeStore is a TTL-evicting in-process CodeStore.
type MemoryCodeStore struct {
	mutex sync.RWMutex
	codes map[string]VerificationCode
	done  chan struct{}
}

func NewMemoryCodeStore(cleanupInterval time.Duration) *MemoryCodeStore {
	store := &MemoryCodeStore{
		codes: make(map[string]VerificationCode),
		done:  make(chan struct{}),
	}

	go store.cleanupLoop(cleanupInterval)

	return store
}

func (s *MemoryCodeStore) Get(email string) (VerificationCode, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	code, exists := s.codes[email]
	return code, exists
}

func (s *MemoryCodeStore) Put(email string, code VerificationCode) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.codes[email] = code
}

func (s *MemoryCodeStore) MarkUsed(email string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if code, exists := s.codes[email]; exists {
		code.Used = true
		s.codes[email] = code
	}
}

func (s *MemoryCodeStore) Delete(email string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.codes, email)
}

// Stop terminates the cleanup goroutine.
func (s *MemoryCodeStore) Stop() {
	close(s.done)
}

func (s *MemoryCodeStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryCodeStore) cleanup() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for email, code := range s.codes {
		if now.After(code.ExpiresAt) || code.Used {
			delete(s.codes, email)
		}
	}
}
