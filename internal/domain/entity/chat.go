package entity

import "time"

// Chat is a two-party conversation thread. Its ID is a deterministic function
// of the participant pair, which makes creation idempotent: initiating contact
// from either side converges on the same document.
type Chat struct {
	ID             string    `json:"id" firestore:"id"`
	Participants   []string  `json:"participants" firestore:"participants"` // sorted pair
	RelatedItemID  string    `json:"related_item_id" firestore:"relatedItemId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	LastActivityAt time.Time `json:"last_activity_at" firestore:"lastActivityAt"`
}

// ChatID derives the thread id from the unordered participant pair: the
// lexicographically sorted concatenation of both uids.
func ChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + b
}

// NewChat builds a thread for the given pair with sorted participants.
func NewChat(a, b, relatedItemID string) *Chat {
	if b < a {
		a, b = b, a
	}
	return &Chat{
		ID:            a + b,
		Participants:  []string{a, b},
		RelatedItemID: relatedItemID,
	}
}

func (c *Chat) HasParticipant(uid string) bool {
	for _, p := range c.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterpart of uid, or empty if uid is not a
// participant.
func (c *Chat) OtherParticipant(uid string) string {
	for _, p := range c.Participants {
		if p != uid {
			return p
		}
	}
	return ""
}
