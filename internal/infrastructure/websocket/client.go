package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"foundly/internal/domain/entity"
	"foundly/internal/infrastructure/ratelimit"
	"foundly/internal/session"
	"foundly/pkg/errors"
	"foundly/pkg/logger"
)

// Client binds one WebSocket connection to one session controller. Commands
// read from the socket drive the controller; everything the controller emits
// flows back through the Send channel.
type Client struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte
	Session *session.Controller

	limiter *ratelimit.RateLimiter
}

func NewClient(id string, conn *websocket.Conn, ctrl *session.Controller, limiter *ratelimit.RateLimiter) *Client {
	return &Client{
		ID:      id,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Session: ctrl,
		limiter: limiter,
	}
}

// rateLimited maps wire commands to limiter actions; unlisted commands are
// not limited.
var rateLimited = map[string]string{
	CommandSendMessage:     "send_message",
	CommandInitiateContact: "initiate_chat",
	CommandResolveScan:     "scan",
}

// ReadPump reads commands from the WebSocket connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for client %s: %v", c.ID, err)
			}
			break
		}

		c.handleCommand(raw)
	}
}

// WritePump sends queued events to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write error for client %s: %v", c.ID, err)
			return
		}
	}
}

func (c *Client) handleCommand(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.pushNotice("BAD_REQUEST", "Invalid message format")
		return
	}

	if action, ok := rateLimited[env.Type]; ok {
		if allowed, _ := c.limiter.Allow(c.ID, action); !allowed {
			c.pushNotice("TOO_MANY_REQUESTS", "Slow down and try again shortly")
			return
		}
	}

	switch env.Type {
	case CommandPing:
		c.push(EventPong, nil)

	case CommandSignIn:
		var data SignInData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid sign_in payload")
			return
		}
		c.report(c.Session.SignIn(data.Token))

	case CommandSignOut:
		c.report(c.Session.SignOut())

	case CommandCompleteProfile:
		var data CompleteProfileData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid complete_profile payload")
			return
		}
		c.report(c.Session.CompleteProfile(data.DisplayName, data.PhotoURL))

	case CommandNavigate:
		var data NavigateData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid navigate payload")
			return
		}
		c.report(c.Session.Navigate(session.State(data.Target)))

	case CommandBack:
		c.report(c.Session.Back())

	case CommandRegisterItem:
		var data RegisterItemData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid register_item payload")
			return
		}
		item, err := c.Session.RegisterItem(data.Name, data.Description)
		if err != nil {
			c.report(err)
			return
		}
		c.push(EventItemRegistered, item)

	case CommandResolveScan:
		var data ResolveScanData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid resolve_scan payload")
			return
		}
		result, err := c.Session.ResolveScan(data.Identifier)
		// A self-scan still carries a result; the informational code rides
		// along as a notice.
		if result != nil {
			c.push(EventScanResult, result)
		}
		if err != nil {
			c.report(err)
		}

	case CommandRequestReturn:
		c.report(c.Session.RequestReturn())

	case CommandConfirmReturn:
		var data ConfirmReturnData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid confirm_return payload")
			return
		}
		c.report(c.Session.ConfirmReturn(data.Confirmed))

	case CommandInitiateContact:
		chat, err := c.Session.InitiateContact()
		if err != nil {
			c.report(err)
			return
		}
		c.push(EventChatOpened, chat)

	case CommandSelectChat:
		var data SelectChatData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid select_chat payload")
			return
		}
		c.report(c.Session.SelectChat(data.ChatID))

	case CommandSendMessage:
		var data SendMessageData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			c.pushNotice("BAD_REQUEST", "Invalid send_message payload")
			return
		}
		c.report(c.Session.SendMessage(data.Text))

	default:
		c.pushNotice("BAD_REQUEST", "Unknown command: "+env.Type)
	}
}

// report surfaces a command failure as a notice; nil is silent because the
// resulting state change already reaches the client through the sink.
func (c *Client) report(err error) {
	if err == nil {
		return
	}
	code := errors.Code(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}
	c.pushNotice(code, err.Error())
}

func (c *Client) push(eventType string, data interface{}) {
	encoded, err := marshalEvent(eventType, data)
	if err != nil {
		logger.Error("Failed to encode %s event for client %s: %v", eventType, c.ID, err)
		return
	}

	select {
	case c.Send <- encoded:
	default:
		logger.Warn("Dropping %s event for slow client %s", eventType, c.ID)
	}
}

func (c *Client) pushNotice(code, message string) {
	c.push(EventNotice, NoticeData{Code: code, Message: message})
}

// Sink returns the ViewSink that forwards controller output to this client.
func (c *Client) Sink() session.ViewSink {
	return &clientSink{client: c}
}

type clientSink struct {
	client *Client
}

func (s *clientSink) StateChanged(state session.State) {
	s.client.push(EventState, map[string]string{"state": string(state)})
}

func (s *clientSink) MyItemsChanged(items []*entity.Item) {
	s.client.push(EventMyItems, items)
}

func (s *clientSink) ChatsChanged(chats []*entity.Chat) {
	s.client.push(EventChats, chats)
}

func (s *clientSink) MessagesChanged(chatID string, messages []*entity.Message) {
	s.client.push(EventMessages, map[string]interface{}{
		"chat_id":  chatID,
		"messages": messages,
	})
}

func (s *clientSink) Notice(code, message string) {
	s.client.pushNotice(code, message)
}
