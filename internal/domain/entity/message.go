package entity

import "time"

// Message is append-only: once written it is never edited or deleted. The
// timestamp is assigned by the store so ordering within a chat is total.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
