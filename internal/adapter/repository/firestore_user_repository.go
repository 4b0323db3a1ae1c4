package repository

import (
	"context"
	"sync"
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

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.StoreUnavailable("get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.StoreUnavailable("parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Upsert(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"id":              user.ID,
		"profileComplete": user.ProfileComplete,
		"updatedAt":       time.Now(),
	}
	if user.DisplayName != "" {
		updateData["displayName"] = user.DisplayName
	}
	if user.PhotoURL != "" {
		updateData["photoURL"] = user.PhotoURL
	}
	if user.CreatedAt.IsZero() {
		updateData["createdAt"] = time.Now()
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, updateData, firestore.MergeAll)
	if err != nil {
		return errors.StoreUnavailable("upsert user", err)
	}

	return nil
}

// Subscribe merges two listeners: a bounded page of the users collection and
// a document listener for selfID, so the caller's own profile is always
// current even when it falls outside the page.
func (r *firestoreUserRepository) Subscribe(ctx context.Context, selfID string, limit int, onChange func(map[string]*entity.User), onError func(error)) repository.Subscription {
	lctx, cancel := context.WithCancel(ctx)

	var mu sync.Mutex
	page := make(map[string]*entity.User)
	var self *entity.User

	emit := func() {
		mu.Lock()
		merged := make(map[string]*entity.User, len(page)+1)
		for id, u := range page {
			merged[id] = u
		}
		if self != nil {
			merged[self.ID] = self
		}
		mu.Unlock()
		onChange(merged)
	}

	go func() {
		snaps := r.client.Collection("users").OrderBy("createdAt", firestore.Desc).Limit(limit).Snapshots(lctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("Profile page subscription failed: %v", err)
				onError(errors.StoreUnavailable("profiles subscription", err))
				return
			}

			users := make(map[string]*entity.User)
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(errors.StoreUnavailable("iterate profiles snapshot", err))
					return
				}

				var user entity.User
				if err := doc.DataTo(&user); err != nil {
					logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
					continue
				}
				user.ID = doc.Ref.ID
				users[user.ID] = &user
			}

			mu.Lock()
			page = users
			mu.Unlock()
			emit()
		}
	}()

	go func() {
		snaps := r.client.Collection("users").Doc(selfID).Snapshots(lctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("Self profile subscription failed: %v", err)
				onError(errors.StoreUnavailable("self profile subscription", err))
				return
			}

			mu.Lock()
			if snap.Exists() {
				var user entity.User
				if err := snap.DataTo(&user); err == nil {
					user.ID = snap.Ref.ID
					self = &user
				}
			} else {
				self = nil
			}
			mu.Unlock()
			emit()
		}
	}()

	return repository.NewSubscription(cancel)
}
