package store

import (
	"strings"
	"sync"
)

// SubscriberSet is the in-memory newsletter list. Membership is
// case-insensitive; addresses are stored lowercased.
type SubscriberSet struct {
	mu     sync.Mutex
	emails map[string]struct{}
}

func NewSubscriberSet() *SubscriberSet {
	return &SubscriberSet{emails: make(map[string]struct{})}
}

// Add records email and reports whether it was newly added. The check and
// insert are atomic so concurrent duplicate subscriptions cannot double-add.
func (s *SubscriberSet) Add(email string) bool {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[key]; ok {
		return false
	}
	s.emails[key] = struct{}{}
	return true
}

func (s *SubscriberSet) Contains(email string) bool {
	key := normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.emails[key]
	return ok
}

func (s *SubscriberSet) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.emails)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
