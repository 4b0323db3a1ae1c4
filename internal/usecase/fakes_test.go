package usecase_test

import (
	"context"
	"fmt"
	"time"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/pkg/errors"
)

// Map-backed repository stubs. Subscriptions are inert; the streaming paths
// are covered by the session package tests.

type stubUserRepo struct {
	users map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (s *stubUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) Subscribe(ctx context.Context, selfID string, limit int, onChange func(map[string]*entity.User), onError func(error)) repository.Subscription {
	return repository.NewSubscription(func() {})
}

type stubItemRepo struct {
	items  map[string]*entity.Item
	nextID int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[string]*entity.Item)}
}

func (s *stubItemRepo) Create(ctx context.Context, item *entity.Item) (string, error) {
	s.nextID++
	item.ID = fmt.Sprintf("item-%d", s.nextID)
	item.Status = entity.ItemStatusMissing
	item.CreatedAt = time.Now()
	s.items[item.ID] = item
	return item.ID, nil
}

func (s *stubItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	return item, nil
}

func (s *stubItemRepo) SetStatus(ctx context.Context, id string, status entity.ItemStatus) error {
	item, ok := s.items[id]
	if !ok {
		return errors.NotFound("Item", nil)
	}
	item.Status = status
	return nil
}

func (s *stubItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	var mine []*entity.Item
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			mine = append(mine, item)
		}
	}
	entity.SortOwnerItems(mine)
	return mine, nil
}

func (s *stubItemRepo) Subscribe(ctx context.Context, onChange func(map[string]*entity.Item), onError func(error)) repository.Subscription {
	return repository.NewSubscription(func() {})
}

type stubChatRepo struct {
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
	nextMsg  int
	upserts  int
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (s *stubChatRepo) Upsert(ctx context.Context, chat *entity.Chat) error {
	s.upserts++
	if existing, ok := s.chats[chat.ID]; ok {
		chat.CreatedAt = existing.CreatedAt
	} else {
		chat.CreatedAt = time.Now()
	}
	chat.LastActivityAt = time.Now()
	s.chats[chat.ID] = chat
	return nil
}

func (s *stubChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	chat, ok := s.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (s *stubChatRepo) ListByParticipant(ctx context.Context, uid string) ([]*entity.Chat, error) {
	var out []*entity.Chat
	for _, chat := range s.chats {
		if chat.HasParticipant(uid) {
			out = append(out, chat)
		}
	}
	return out, nil
}

func (s *stubChatRepo) AppendMessage(ctx context.Context, message *entity.Message) (string, error) {
	s.nextMsg++
	message.ID = fmt.Sprintf("msg-%d", s.nextMsg)
	message.CreatedAt = time.Now()
	s.messages[message.ChatID] = append(s.messages[message.ChatID], message)
	return message.ID, nil
}

func (s *stubChatRepo) SubscribeByParticipant(ctx context.Context, uid string, onChange func(map[string]*entity.Chat), onError func(error)) repository.Subscription {
	return repository.NewSubscription(func() {})
}

func (s *stubChatRepo) SubscribeMessages(ctx context.Context, chatID string, onChange func([]*entity.Message), onError func(error)) repository.Subscription {
	return repository.NewSubscription(func() {})
}

type stubAuth struct {
	users  map[string]string // email -> uid
	tokens map[string]string // token -> uid
	nextID int
}

func newStubAuth() *stubAuth {
	return &stubAuth{
		users:  make(map[string]string),
		tokens: make(map[string]string),
	}
}

func (s *stubAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	s.nextID++
	uid := fmt.Sprintf("uid-%d", s.nextID)
	s.users[email] = uid
	return uid, nil
}

func (s *stubAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := s.tokens[token]
	if !ok {
		return "", fmt.Errorf("unknown token")
	}
	return uid, nil
}

func (s *stubAuth) GenerateToken(ctx context.Context, uid string) (string, error) {
	token := fmt.Sprintf("tok-%s-%d", uid, len(s.tokens))
	s.tokens[token] = uid
	return token, nil
}

func (s *stubAuth) SignInWithEmailPassword(email, password string) (string, error) {
	uid, ok := s.users[email]
	if !ok {
		return "", fmt.Errorf("no such user")
	}
	token := fmt.Sprintf("tok-%s-%d", uid, len(s.tokens))
	s.tokens[token] = uid
	return token, nil
}
