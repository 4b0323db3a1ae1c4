package websocket

import (
	"encoding/json"
	"time"
)

// Client commands. Every command maps onto one session controller operation.
const (
	CommandPing            = "ping"
	CommandSignIn          = "sign_in"
	CommandSignOut         = "sign_out"
	CommandCompleteProfile = "complete_profile"
	CommandNavigate        = "navigate"
	CommandBack            = "back"
	CommandRegisterItem    = "register_item"
	CommandResolveScan     = "resolve_scan"
	CommandRequestReturn   = "request_return"
	CommandConfirmReturn   = "confirm_return"
	CommandInitiateContact = "initiate_contact"
	CommandSelectChat      = "select_chat"
	CommandSendMessage     = "send_message"
)

// Server events pushed to the client.
const (
	EventPong           = "pong"
	EventState          = "state"
	EventMyItems        = "my_items"
	EventChats          = "chats"
	EventMessages       = "messages"
	EventNotice         = "notice"
	EventScanResult     = "scan_result"
	EventItemRegistered = "item_registered"
	EventChatOpened     = "chat_opened"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type SignInData struct {
	Token string `json:"token"`
}

type CompleteProfileData struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type NavigateData struct {
	Target string `json:"target"`
}

type RegisterItemData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ResolveScanData struct {
	Identifier string `json:"identifier"`
}

type ConfirmReturnData struct {
	Confirmed bool `json:"confirmed"`
}

type SelectChatData struct {
	ChatID string `json:"chat_id"`
}

type SendMessageData struct {
	Text string `json:"text"`
}

type NoticeData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func marshalEvent(eventType string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	return json.Marshal(Envelope{
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
