package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/pkg/errors"
	"foundly/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

// Upsert merges into the document at the deterministic chat id. Concurrent or
// repeated initiation from either participant converges on the same thread
// because every field written here is idempotent for a given pair.
func (r *firestoreChatRepository) Upsert(ctx context.Context, chat *entity.Chat) error {
	docRef := r.client.Collection("chats").Doc(chat.ID)

	updateData := map[string]interface{}{
		"id":             chat.ID,
		"participants":   chat.Participants,
		"relatedItemId":  chat.RelatedItemID,
		"lastActivityAt": time.Now(),
	}

	existing, err := docRef.Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errors.StoreUnavailable("get chat for upsert", err)
	}
	if err != nil || !existing.Exists() {
		updateData["createdAt"] = time.Now()
	}

	if _, err := docRef.Set(ctx, updateData, firestore.MergeAll); err != nil {
		return errors.StoreUnavailable("upsert chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.StoreUnavailable("get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.StoreUnavailable("parse chat data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) ListByParticipant(ctx context.Context, uid string) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").Where("participants", "array-contains", uid).OrderBy("lastActivityAt", firestore.Desc)

	iter := query.Documents(ctx)
	var chats []*entity.Chat

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while fetching chats for user %s: %v", uid, err)
			return nil, errors.StoreUnavailable("list chats", err)
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			logger.Warn("Skipping malformed chat document %s: %v", doc.Ref.ID, err)
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) AppendMessage(ctx context.Context, message *entity.Message) (string, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	// Zero CreatedAt lets the serverTimestamp tag assign the store time.
	message.CreatedAt = time.Time{}

	docRef := r.client.Collection("chats").Doc(message.ChatID).Collection("messages").Doc(message.ID)
	if _, err := docRef.Set(ctx, message); err != nil {
		return "", errors.StoreUnavailable("append message", err)
	}

	_, err := r.client.Collection("chats").Doc(message.ChatID).Set(ctx, map[string]interface{}{
		"lastActivityAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		logger.Warn("Failed to bump chat %s activity: %v", message.ChatID, err)
	}

	return message.ID, nil
}

func (r *firestoreChatRepository) SubscribeByParticipant(ctx context.Context, uid string, onChange func(map[string]*entity.Chat), onError func(error)) repository.Subscription {
	lctx, cancel := context.WithCancel(ctx)

	go func() {
		snaps := r.client.Collection("chats").Where("participants", "array-contains", uid).Snapshots(lctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("Chat subscription failed for user %s: %v", uid, err)
				onError(errors.StoreUnavailable("chats subscription", err))
				return
			}

			chats := make(map[string]*entity.Chat)
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(errors.StoreUnavailable("iterate chats snapshot", err))
					return
				}

				var chat entity.Chat
				if err := doc.DataTo(&chat); err != nil {
					logger.Warn("Skipping malformed chat document %s: %v", doc.Ref.ID, err)
					continue
				}
				chat.ID = doc.Ref.ID
				chats[chat.ID] = &chat
			}

			onChange(chats)
		}
	}()

	return repository.NewSubscription(cancel)
}

func (r *firestoreChatRepository) SubscribeMessages(ctx context.Context, chatID string, onChange func([]*entity.Message), onError func(error)) repository.Subscription {
	lctx, cancel := context.WithCancel(ctx)

	go func() {
		snaps := r.client.Collection("chats").Doc(chatID).Collection("messages").OrderBy("createdAt", firestore.Asc).Snapshots(lctx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				logger.Error("Message subscription failed for chat %s: %v", chatID, err)
				onError(errors.StoreUnavailable("messages subscription", err))
				return
			}

			var messages []*entity.Message
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(errors.StoreUnavailable("iterate messages snapshot", err))
					return
				}

				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
					continue
				}
				message.ID = doc.Ref.ID
				messages = append(messages, &message)
			}

			onChange(messages)
		}
	}()

	return repository.NewSubscription(cancel)
}
