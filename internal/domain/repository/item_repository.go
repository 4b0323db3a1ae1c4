package repository

import (
	"context"

	"foundly/internal/domain/entity"
)

// ItemRepository is the shared item registry. There is no delete operation;
// items live forever. Create assigns a store-generated, globally unique id.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)

	// SetStatus is a single-field merge write, safe under last-write-wins.
	SetStatus(ctx context.Context, id string, status entity.ItemStatus) error

	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error)

	// Subscribe streams the full collection, unfiltered, so any principal can
	// resolve any item by id when scanning. Owner filtering happens client
	// side.
	Subscribe(ctx context.Context, onChange func(map[string]*entity.Item), onError func(error)) Subscription
}
