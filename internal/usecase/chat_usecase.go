package usecase

import (
	"context"
	"strings"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/internal/infrastructure/ratelimit"
	"foundly/pkg/errors"
	"foundly/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
	}
}

type InitiateContactInput struct {
	OwnerID string
	ItemID  string
}

// InitiateContact opens the one thread for this participant pair. The chat id
// is a deterministic function of the pair and the write is a merge upsert, so
// initiation from either side, repeated or concurrent, converges on the same
// document.
func (uc *ChatUseCase) InitiateContact(ctx context.Context, actorID string, input InitiateContactInput) (*entity.Chat, error) {
	if allowed, _ := uc.rateLimiter.Allow(actorID, "initiate_chat"); !allowed {
		return nil, errors.TooManyRequests("Too many contact attempts, please wait")
	}

	if actorID == input.OwnerID {
		return nil, errors.BadRequest("you cannot open a chat with yourself", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.ItemNotFound(input.ItemID)
		}
		return nil, err
	}
	if item.OwnerID != input.OwnerID {
		return nil, errors.BadRequest("item does not belong to that owner", nil)
	}
	if item.Status != entity.ItemStatusMissing {
		return nil, errors.BadRequest("contact is only available while the item is missing", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.OwnerProfileUnavailable(input.OwnerID)
		}
		return nil, err
	}

	chat := entity.NewChat(actorID, input.OwnerID, input.ItemID)
	if err := uc.chatRepo.Upsert(ctx, chat); err != nil {
		return nil, err
	}
	logger.Info("Chat %s opened by %s", chat.ID, actorID)

	return chat, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, actorID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(actorID) {
		return nil, errors.Forbidden("you are not a participant in this chat", nil)
	}

	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, actorID string) ([]*entity.Chat, error) {
	return uc.chatRepo.ListByParticipant(ctx, actorID)
}

type SendMessageInput struct {
	ChatID string
	Text   string
}

// SendMessage appends one immutable message. The sender sees it only once the
// message subscription delivers it back.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if allowed, _ := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Too many messages, please wait")
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.InputInvalid("message text is required")
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("you are not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:   chat.ID,
		SenderID: senderID,
		Text:     text,
	}

	id, err := uc.chatRepo.AppendMessage(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = id

	return message, nil
}
