package repository

import (
	"context"

	"foundly/internal/domain/entity"
)

// ChatRepository owns conversation threads and their append-only message
// subsequences. Upsert is a merge write keyed by the deterministic chat id,
// never a blind insert, so repeated initiation converges on one thread.
type ChatRepository interface {
	Upsert(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByParticipant(ctx context.Context, uid string) ([]*entity.Chat, error)

	// AppendMessage writes one immutable message with a server-assigned
	// timestamp and returns the generated id.
	AppendMessage(ctx context.Context, message *entity.Message) (string, error)

	// SubscribeByParticipant streams the chats containing uid.
	SubscribeByParticipant(ctx context.Context, uid string, onChange func(map[string]*entity.Chat), onError func(error)) Subscription

	// SubscribeMessages streams the ordered message sequence for one chat,
	// ascending by timestamp.
	SubscribeMessages(ctx context.Context, chatID string, onChange func([]*entity.Message), onError func(error)) Subscription
}
