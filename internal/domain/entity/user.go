package entity

import "time"

// User is the profile document for one authenticated principal, keyed by the
// uid issued by the identity provider. Profile completion is tracked as an
// explicit flag rather than inferred from a placeholder display name.
type User struct {
	ID              string    `json:"id" firestore:"id"`
	DisplayName     string    `json:"display_name" firestore:"displayName"`
	PhotoURL        string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	ProfileComplete bool      `json:"profile_complete" firestore:"profileComplete"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}

// PlaceholderUser is the transient stand-in for a principal that has not
// completed a profile yet. It is never persisted as-is; only the completed
// profile write creates the durable document.
func PlaceholderUser(uid string) *User {
	return &User{
		ID:              uid,
		ProfileComplete: false,
	}
}
