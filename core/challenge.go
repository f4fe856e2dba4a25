package core

import (
	"context"
	"sync"
	"time"
)

const defaultChallengeCapacity = 1000

// InMemoryChallengeStore keeps outstanding OTP challenges in process memory.
// Suitable for a single instance or tests; put a shared store behind the
// ChallengeStore port when running more than one engine.
type InMemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]Challenge
	maxSize    int
	now        func() time.Time
}

// NewInMemoryChallengeStore builds a bounded store. maxSize <= 0 selects the
// default capacity; now nil selects time.Now.
func NewInMemoryChallengeStore(maxSize int, now func() time.Time) *InMemoryChallengeStore {
	if maxSize <= 0 {
		maxSize = defaultChallengeCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &InMemoryChallengeStore{
		challenges: make(map[string]Challenge),
		maxSize:    maxSize,
		now:        now,
	}
}

func (s *InMemoryChallengeStore) Set(ctx context.Context, key string, challenge *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop expired entries first, then evict arbitrarily if still full.
	if len(s.challenges) >= s.maxSize {
		now := s.now()
		for k, c := range s.challenges {
			if now.After(c.ExpiresAt) {
				delete(s.challenges, k)
			}
		}
		for k := range s.challenges {
			if len(s.challenges) < s.maxSize {
				break
			}
			if k != key {
				delete(s.challenges, k)
			}
		}
	}

	s.challenges[key] = *challenge
	return nil
}

func (s *InMemoryChallengeStore) Get(ctx context.Context, key string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, exists := s.challenges[key]
	if !exists {
		return nil, ErrChallengeNotFound
	}

	if s.now().After(challenge.ExpiresAt) {
		delete(s.challenges, key)
		return nil, ErrChallengeExpired
	}

	return &challenge, nil
}

func (s *InMemoryChallengeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, key)
	return nil
}

// Len reports the number of stored challenges, expired or not.
func (s *InMemoryChallengeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}

var _ ChallengeStore = (*InMemoryChallengeStore)(nil)
