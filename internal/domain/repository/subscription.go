package repository

import "sync"

// Subscription is the handle returned by every live stream. Cancel tears the
// stream down; calling it more than once is safe but only the first call has
// an effect.
type Subscription interface {
	Cancel()
}

type cancelSubscription struct {
	once   sync.Once
	cancel func()
}

func (s *cancelSubscription) Cancel() {
	s.once.Do(s.cancel)
}

// NewSubscription wraps a cancel function into a once-only Subscription.
func NewSubscription(cancel func()) Subscription {
	return &cancelSubscription{cancel: cancel}
}
