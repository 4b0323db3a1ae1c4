package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundly/internal/domain/entity"
	"foundly/internal/usecase"
	"foundly/pkg/errors"
)

func TestRegisterItemAssignsIDAndMissingStatus(t *testing.T) {
	items := newStubItemRepo()
	uc := usecase.NewItemUseCase(items, newStubUserRepo())

	item, err := uc.RegisterItem(context.Background(), "alice", usecase.RegisterItemInput{
		Name:        "  Umbrella  ",
		Description: "Black, long handle",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Umbrella", item.Name)
	assert.Equal(t, "alice", item.OwnerID)
	assert.Equal(t, entity.ItemStatusMissing, item.Status)
}

func TestRegisterItemRequiresName(t *testing.T) {
	uc := usecase.NewItemUseCase(newStubItemRepo(), newStubUserRepo())

	_, err := uc.RegisterItem(context.Background(), "alice", usecase.RegisterItemInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, "INPUT_INVALID", errors.Code(err))
}

func TestMarkReturnedGates(t *testing.T) {
	items := newStubItemRepo()
	items.items["item-1"] = &entity.Item{ID: "item-1", OwnerID: "alice", Status: entity.ItemStatusMissing}
	uc := usecase.NewItemUseCase(items, newStubUserRepo())
	ctx := context.Background()

	// The yes/no gate: no write without explicit confirmation.
	_, err := uc.MarkReturned(ctx, "bob", "item-1", false)
	require.Error(t, err)
	assert.Equal(t, entity.ItemStatusMissing, items.items["item-1"].Status)

	// Owners do not confirm their own returns.
	_, err = uc.MarkReturned(ctx, "alice", "item-1", true)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errors.Code(err))

	item, err := uc.MarkReturned(ctx, "bob", "item-1", true)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusReturned, item.Status)

	// Re-confirming converges without error and without another transition.
	item, err = uc.MarkReturned(ctx, "bob", "item-1", true)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusReturned, item.Status)
}

func TestMarkReturnedUnknownItem(t *testing.T) {
	uc := usecase.NewItemUseCase(newStubItemRepo(), newStubUserRepo())

	_, err := uc.MarkReturned(context.Background(), "bob", "nope", true)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errors.Code(err))
}

func TestResolveScanPointRead(t *testing.T) {
	items := newStubItemRepo()
	users := newStubUserRepo()
	items.items["item-1"] = &entity.Item{ID: "item-1", OwnerID: "alice", Status: entity.ItemStatusMissing}
	users.users["alice"] = &entity.User{ID: "alice", DisplayName: "Alice", ProfileComplete: true}
	uc := usecase.NewItemUseCase(items, users)
	ctx := context.Background()

	result, err := uc.ResolveScan(ctx, "bob", "  item-1 ")
	require.NoError(t, err)
	assert.Equal(t, "item-1", result.Item.ID)
	assert.Equal(t, "Alice", result.Owner.DisplayName)
	assert.False(t, result.SelfScan)
}

func TestResolveScanEmptyIdentifier(t *testing.T) {
	uc := usecase.NewItemUseCase(newStubItemRepo(), newStubUserRepo())

	_, err := uc.ResolveScan(context.Background(), "bob", " ")
	require.Error(t, err)
	assert.Equal(t, "INPUT_INVALID", errors.Code(err))
}

func TestResolveScanUnknownIdentifierEchoesIt(t *testing.T) {
	uc := usecase.NewItemUseCase(newStubItemRepo(), newStubUserRepo())

	_, err := uc.ResolveScan(context.Background(), "bob", "mystery-tag")
	require.Error(t, err)
	assert.Equal(t, "ITEM_NOT_FOUND", errors.Code(err))
	assert.Contains(t, err.Error(), "mystery-tag")
}

func TestResolveScanSelf(t *testing.T) {
	items := newStubItemRepo()
	items.items["item-1"] = &entity.Item{ID: "item-1", OwnerID: "bob", Status: entity.ItemStatusMissing}
	uc := usecase.NewItemUseCase(items, newStubUserRepo())

	result, err := uc.ResolveScan(context.Background(), "bob", "item-1")
	require.Error(t, err)
	assert.Equal(t, "SELF_SCAN", errors.Code(err))
	require.NotNil(t, result)
	assert.True(t, result.SelfScan)
	assert.Nil(t, result.Owner)
}

func TestResolveScanOwnerProfileMissing(t *testing.T) {
	items := newStubItemRepo()
	items.items["item-1"] = &entity.Item{ID: "item-1", OwnerID: "ghost", Status: entity.ItemStatusMissing}
	uc := usecase.NewItemUseCase(items, newStubUserRepo())

	_, err := uc.ResolveScan(context.Background(), "bob", "item-1")
	require.Error(t, err)
	assert.Equal(t, "OWNER_PROFILE_UNAVAILABLE", errors.Code(err))
}

func TestMyItemsOrdered(t *testing.T) {
	items := newStubItemRepo()
	base := time.Now()
	items.items["a"] = &entity.Item{ID: "a", OwnerID: "alice", Status: entity.ItemStatusReturned, CreatedAt: base.Add(3 * time.Hour)}
	items.items["b"] = &entity.Item{ID: "b", OwnerID: "alice", Status: entity.ItemStatusMissing, CreatedAt: base}
	items.items["c"] = &entity.Item{ID: "c", OwnerID: "bob", Status: entity.ItemStatusMissing, CreatedAt: base}
	uc := usecase.NewItemUseCase(items, newStubUserRepo())

	mine, err := uc.MyItems(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "b", mine[0].ID)
	assert.Equal(t, "a", mine[1].ID)
}
