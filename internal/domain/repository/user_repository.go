package repository

import (
	"context"

	"foundly/internal/domain/entity"
)

// UserRepository is the profile store. Upsert has merge semantics: fields not
// present in the write are preserved. Read failures surface as
// STORE_UNAVAILABLE, never as a false "not found".
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error

	// Subscribe streams a bounded page of profiles plus an always-current
	// entry for selfID. The callback receives the full current snapshot on
	// every change.
	Subscribe(ctx context.Context, selfID string, limit int, onChange func(map[string]*entity.User), onError func(error)) Subscription
}
