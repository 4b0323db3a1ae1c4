package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItemCanTransition(t *testing.T) {
	missing := &Item{Status: ItemStatusMissing}
	returned := &Item{Status: ItemStatusReturned}

	assert.True(t, missing.CanTransition(ItemStatusReturned))
	assert.False(t, returned.CanTransition(ItemStatusMissing))
	assert.False(t, returned.CanTransition(ItemStatusReturned))
	assert.False(t, missing.CanTransition(ItemStatusMissing))
}

func TestSortOwnerItems(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []*Item{
		{ID: "old-returned", Status: ItemStatusReturned, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "new-returned", Status: ItemStatusReturned, CreatedAt: base.Add(4 * time.Hour)},
		{ID: "old-missing", Status: ItemStatusMissing, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "new-missing", Status: ItemStatusMissing, CreatedAt: base.Add(3 * time.Hour)},
	}

	SortOwnerItems(items)

	got := []string{items[0].ID, items[1].ID, items[2].ID, items[3].ID}
	assert.Equal(t, []string{"new-missing", "old-missing", "new-returned", "old-returned"}, got)
}

func TestSortOwnerItemsEmpty(t *testing.T) {
	assert.NotPanics(t, func() { SortOwnerItems(nil) })
}
