package usecase

import (
	"context"
	"strings"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/pkg/errors"
	"foundly/pkg/logger"
)

type ItemUseCase struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func NewItemUseCase(itemRepo repository.ItemRepository, userRepo repository.UserRepository) *ItemUseCase {
	return &ItemUseCase{
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

type RegisterItemInput struct {
	Name        string
	Description string
}

func (uc *ItemUseCase) RegisterItem(ctx context.Context, ownerID string, input RegisterItemInput) (*entity.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.InputInvalid("item name is required")
	}

	item := &entity.Item{
		Name:        name,
		Description: input.Description,
		OwnerID:     ownerID,
	}

	id, err := uc.itemRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	logger.Info("Item %s registered by %s", id, ownerID)

	return item, nil
}

func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

// MyItems returns the caller's items in dashboard order: missing first, then
// returned, newest first within each group.
func (uc *ItemUseCase) MyItems(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	return uc.itemRepo.ListByOwner(ctx, ownerID)
}

// MarkReturned performs the irreversible status transition. The confirmed
// flag is the yes/no gate: callers must send an explicit confirmation, there
// is no implicit path to this write. The owner check is a UI-contract guard,
// not a security boundary; the store's access policy is the real one.
func (uc *ItemUseCase) MarkReturned(ctx context.Context, actorID, itemID string, confirmed bool) (*entity.Item, error) {
	if !confirmed {
		return nil, errors.BadRequest("return must be explicitly confirmed", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == actorID {
		return nil, errors.Forbidden("owners cannot confirm the return of their own item", nil)
	}

	if item.Status == entity.ItemStatusReturned {
		// Converging on the same value; nothing to write.
		return item, nil
	}
	if !item.CanTransition(entity.ItemStatusReturned) {
		return nil, errors.BadRequest("item status cannot move to returned", nil)
	}

	if err := uc.itemRepo.SetStatus(ctx, itemID, entity.ItemStatusReturned); err != nil {
		return nil, err
	}

	item.Status = entity.ItemStatusReturned
	return item, nil
}

type ScanResolution struct {
	Item     *entity.Item `json:"item"`
	Owner    *entity.User `json:"owner,omitempty"`
	SelfScan bool         `json:"self_scan"`
}

// ResolveScan is the point-read twin of the session controller's snapshot
// based resolution, for clients without a live session.
func (uc *ItemUseCase) ResolveScan(ctx context.Context, actorID, raw string) (*ScanResolution, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return nil, errors.InputInvalid("identifier is required")
	}

	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.ItemNotFound(id)
		}
		return nil, err
	}

	if item.OwnerID == actorID {
		return &ScanResolution{Item: item, SelfScan: true}, errors.SelfScan(item.ID)
	}

	owner, err := uc.userRepo.GetByID(ctx, item.OwnerID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.OwnerProfileUnavailable(item.OwnerID)
		}
		return nil, err
	}

	return &ScanResolution{Item: item, Owner: owner}, nil
}
