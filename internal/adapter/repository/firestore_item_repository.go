package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/pkg/errors"
	"foundly/pkg/logger"
)

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) (string, error) {
	doc := r.client.Collection("items").NewDoc()
	item.ID = doc.ID
	item.Status = entity.ItemStatusMissing
	item.CreatedAt = time.Now()

	if _, err := doc.Set(ctx, item); err != nil {
		return "", errors.StoreUnavailable("create item", err)
	}

	return item.ID, nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.StoreUnavailable("get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.StoreUnavailable("parse item data", err)
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

func (r *firestoreItemRepository) SetStatus(ctx context.Context, id string, st entity.ItemStatus) error {
	_, err := r.client.Collection("items").Doc(id).Set(ctx, map[string]interface{}{
		"status": st,
	}, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Item", err)
		}
		return errors.StoreUnavailable("set item status", err)
	}

	return nil
}

func (r *firestoreItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	iter := r.client.Collection("items").Where("ownerId", "==", ownerID).Documents(ctx)

	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.StoreUnavailable("list items by owner", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			logger.Warn("Skipping malformed item document %s: %v", doc.Ref.ID, err)
			continue
		}
		item.ID = doc.Ref.ID
		items = append(items, &item)
	}

	entity.SortOwnerItems(items)
	return items, nil
}

func (r *firestoreItemRepository) Subscribe(ctx context.Context, onChange func(map[string]*entity.Item), onError func(error)) repository.Subscription {
	lctx, cancel := context.WithCancel(ctx)

	go func() {
		snaps := r.client.Collection("items").Snapshots(lctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("Item subscription failed: %v", err)
				onError(errors.StoreUnavailable("items subscription", err))
				return
			}

			items := make(map[string]*entity.Item)
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(errors.StoreUnavailable("iterate items snapshot", err))
					return
				}

				var item entity.Item
				if err := doc.DataTo(&item); err != nil {
					logger.Warn("Skipping malformed item document %s: %v", doc.Ref.ID, err)
					continue
				}
				item.ID = doc.Ref.ID
				items[item.ID] = &item
			}

			onChange(items)
		}
	}()

	return repository.NewSubscription(cancel)
}
