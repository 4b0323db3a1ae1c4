package entity

import (
	"sort"
	"time"
)

type ItemStatus string

const (
	ItemStatusMissing  ItemStatus = "missing"
	ItemStatusReturned ItemStatus = "returned"
)

// Item is a registered physical object. The ID doubles as the QR payload and
// is assigned by the store at creation time. Items are never deleted.
type Item struct {
	ID          string     `json:"id" firestore:"id"`
	Name        string     `json:"name" firestore:"name"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	OwnerID     string     `json:"owner_id" firestore:"ownerId"`
	Status      ItemStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
}

// CanTransition reports whether the status may move to the target. The only
// legal transition is missing to returned, exactly once.
func (i *Item) CanTransition(to ItemStatus) bool {
	return i.Status == ItemStatusMissing && to == ItemStatusReturned
}

// SortOwnerItems orders an owner's items for the dashboard: all missing items
// before all returned ones, newest first within each status group.
func SortOwnerItems(items []*Item) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Status != items[b].Status {
			return items[a].Status == ItemStatusMissing
		}
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
}
