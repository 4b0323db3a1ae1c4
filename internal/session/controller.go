package session

import (
	"context"
	"sort"
	"strings"
	"sync"

	"foundly/internal/domain/entity"
	"foundly/internal/domain/repository"
	"foundly/pkg/errors"
	"foundly/pkg/logger"
)

// TokenVerifier resolves an identity token to a principal uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// ViewSink receives everything the session pushes to its client: state
// transitions, derived view snapshots, and surfaced notices. Implementations
// must not call back into the controller synchronously.
type ViewSink interface {
	StateChanged(state State)
	MyItemsChanged(items []*entity.Item)
	ChatsChanged(chats []*entity.Chat)
	MessagesChanged(chatID string, messages []*entity.Message)
	Notice(code string, message string)
}

// Deps are the explicit collaborators of a controller. Nothing here is
// ambient; fakes slot in for tests.
type Deps struct {
	Users           repository.UserRepository
	Items           repository.ItemRepository
	Chats           repository.ChatRepository
	Auth            TokenVerifier
	ProfilePageSize int
}

const defaultProfilePageSize = 50

// Subscription purposes. The controller owns at most one live subscription
// per purpose and cancels it exactly once when the owning state is exited.
const (
	subItems    = "items"
	subProfiles = "profiles"
	subChats    = "chats"
	subMessages = "messages"
)

// ScanResult is the outcome of resolving a submitted identifier.
type ScanResult struct {
	Item     *entity.Item `json:"item"`
	Owner    *entity.User `json:"owner,omitempty"`
	SelfScan bool         `json:"self_scan"`
}

// Controller is the reactive core of one user session. All store
// notifications and all client commands funnel into a single event queue
// processed by one goroutine, so controller state needs no locking.
type Controller struct {
	deps Deps
	sink ViewSink

	events chan func()
	closed chan struct{}
	once   sync.Once
	runCtx context.Context

	state   sessionData
	subs    map[string]repository.Subscription
}

// sessionData groups the mutable session state owned by the run loop.
type sessionData struct {
	current State
	uid     string
	profile *entity.User

	items    map[string]*entity.Item
	profiles map[string]*entity.User
	chats    map[string]*entity.Chat
	messages []*entity.Message

	selectedItem  *entity.Item
	selectedOwner *entity.User
	selectedChat  *entity.Chat
	pendingReturn string
}

func NewController(deps Deps, sink ViewSink) *Controller {
	if deps.ProfilePageSize <= 0 {
		deps.ProfilePageSize = defaultProfilePageSize
	}
	return &Controller{
		deps:   deps,
		sink:   sink,
		events: make(chan func(), 64),
		closed: make(chan struct{}),
		state: sessionData{
			current:  StateUnauthenticated,
			items:    make(map[string]*entity.Item),
			profiles: make(map[string]*entity.User),
			chats:    make(map[string]*entity.Chat),
		},
		subs: make(map[string]repository.Subscription),
	}
}

// Run processes the event queue until ctx is cancelled or Close is called.
// It must be running before any command method is invoked.
func (c *Controller) Run(ctx context.Context) {
	c.runCtx = ctx
	for {
		select {
		case fn := <-c.events:
			fn()
		case <-ctx.Done():
			c.shutdown()
			return
		case <-c.closed:
			c.shutdown()
			return
		}
	}
}

// Close stops the run loop and tears down every active subscription.
func (c *Controller) Close() {
	c.once.Do(func() { close(c.closed) })
}

// run executes fn on the session goroutine and waits for its result.
func (c *Controller) run(fn func() error) error {
	done := make(chan error, 1)
	select {
	case c.events <- func() { done <- fn() }:
	case <-c.closed:
		return errors.Internal("session is closed", nil)
	}
	select {
	case err := <-done:
		return err
	case <-c.closed:
		return errors.Internal("session is closed", nil)
	}
}

// post queues fn without waiting; used by subscription callbacks.
func (c *Controller) post(fn func()) {
	select {
	case c.events <- fn:
	case <-c.closed:
	}
}

func (c *Controller) setState(to State) {
	c.state.current = to
	c.sink.StateChanged(to)
}

// surface downgrades a failure to a notice. Prior state stays intact and
// nothing is retried automatically.
func (c *Controller) surface(err error) {
	code := errors.Code(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}
	logger.Warn("Session %s surfaced %s: %v", c.state.uid, code, err)
	c.sink.Notice(code, err.Error())
}

// State reports the current machine state.
func (c *Controller) State() State {
	var s State
	c.run(func() error {
		s = c.state.current
		return nil
	})
	return s
}

// SignIn resolves the identity token and lands on needs-profile or dashboard
// depending on whether a completed profile exists for the principal.
func (c *Controller) SignIn(token string) error {
	return c.run(func() error { return c.signIn(token) })
}

func (c *Controller) signIn(token string) error {
	if c.state.current != StateUnauthenticated {
		return errors.BadRequest("already signed in", nil)
	}
	c.setState(StateAwaitingIdentity)

	uid, err := c.deps.Auth.VerifyToken(c.runCtx, token)
	if err != nil {
		c.setState(StateUnauthenticated)
		return errors.Unauthorized("Invalid or expired token", err)
	}
	c.state.uid = uid

	profile, err := c.deps.Users.GetByID(c.runCtx, uid)
	switch {
	case err == nil:
		c.state.profile = profile
	case errors.Is(err, "NOT_FOUND"):
		// First session for this principal: a transient placeholder, never
		// persisted until the profile is explicitly completed.
		c.state.profile = entity.PlaceholderUser(uid)
	default:
		c.state.uid = ""
		c.setState(StateUnauthenticated)
		return err
	}

	if c.state.profile.ProfileComplete {
		c.setState(StateDashboard)
		c.establishBaseSubscriptions()
	} else {
		c.setState(StateNeedsProfile)
	}
	return nil
}

// SignOut drops the principal and cancels every live subscription.
func (c *Controller) SignOut() error {
	return c.run(func() error {
		if c.state.current == StateUnauthenticated {
			return errors.BadRequest("not signed in", nil)
		}
		c.teardown(subItems, subProfiles, subChats, subMessages)
		c.state = sessionData{
			current:  c.state.current,
			items:    make(map[string]*entity.Item),
			profiles: make(map[string]*entity.User),
			chats:    make(map[string]*entity.Chat),
		}
		c.setState(StateUnauthenticated)
		return nil
	})
}

// CompleteProfile persists the profile with the completion flag set and moves
// to the dashboard.
func (c *Controller) CompleteProfile(displayName, photoURL string) error {
	return c.run(func() error {
		if c.state.current != StateNeedsProfile {
			return errors.BadRequest("no profile completion pending", nil)
		}
		displayName = strings.TrimSpace(displayName)
		if displayName == "" {
			return errors.InputInvalid("display name is required")
		}

		user := &entity.User{
			ID:              c.state.uid,
			DisplayName:     displayName,
			PhotoURL:        photoURL,
			ProfileComplete: true,
		}
		if err := c.deps.Users.Upsert(c.runCtx, user); err != nil {
			return err
		}

		c.state.profile = user
		c.setState(StateDashboard)
		c.establishBaseSubscriptions()
		return nil
	})
}

// Navigate handles the explicit, reversible dashboard navigations.
func (c *Controller) Navigate(to State) error {
	return c.run(func() error {
		if to != StateComposingItem && to != StateScanning {
			return errors.BadRequest("cannot navigate there directly", nil)
		}
		if !c.state.current.CanTransition(to) {
			return errors.BadRequest("navigation not allowed from current view", nil)
		}
		c.setState(to)
		return nil
	})
}

// Back performs explicit back navigation, tearing down the message
// subscription when leaving the chat view.
func (c *Controller) Back() error {
	return c.run(func() error {
		target, ok := backTargets[c.state.current]
		if !ok {
			return errors.BadRequest("nothing to go back to", nil)
		}
		if c.state.current == StateChatting {
			c.teardown(subMessages)
			c.state.selectedChat = nil
			c.state.messages = nil
		}
		if target == StateDashboard {
			c.state.selectedItem = nil
			c.state.selectedOwner = nil
			c.state.pendingReturn = ""
		}
		c.setState(target)
		return nil
	})
}

// RegisterItem creates an item owned by the current principal and shows its
// code view. The authoritative record still arrives through the registry
// subscription like any other write.
func (c *Controller) RegisterItem(name, description string) (*entity.Item, error) {
	var created *entity.Item
	err := c.run(func() error {
		if c.state.current != StateComposingItem {
			return errors.BadRequest("not composing an item", nil)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return errors.InputInvalid("item name is required")
		}

		item := &entity.Item{
			Name:        name,
			Description: description,
			OwnerID:     c.state.uid,
		}
		if _, err := c.deps.Items.Create(c.runCtx, item); err != nil {
			return err
		}

		c.state.selectedItem = item
		c.setState(StateViewingItemCode)
		created = item
		return nil
	})
	return created, err
}

// ResolveScan maps a submitted identifier to an item and its owner using the
// locally cached registry snapshot, with a point read for the owner profile
// on cache miss.
func (c *Controller) ResolveScan(raw string) (*ScanResult, error) {
	var result *ScanResult
	err := c.run(func() error {
		var err error
		result, err = c.resolveScan(raw)
		return err
	})
	return result, err
}

func (c *Controller) resolveScan(raw string) (*ScanResult, error) {
	if c.state.current != StateScanning {
		return nil, errors.BadRequest("not scanning", nil)
	}

	id := strings.TrimSpace(raw)
	if id == "" {
		return nil, errors.InputInvalid("identifier is required")
	}

	item, ok := c.state.items[id]
	if !ok {
		return nil, errors.ItemNotFound(id)
	}

	if item.OwnerID == c.state.uid {
		// Self-scan: show the caller their own code view and signal why no
		// owner screen appeared.
		c.state.selectedItem = item
		c.setState(StateViewingItemCode)
		return &ScanResult{Item: item, SelfScan: true}, errors.SelfScan(item.ID)
	}

	owner, ok := c.state.profiles[item.OwnerID]
	if !ok {
		var err error
		owner, err = c.deps.Users.GetByID(c.runCtx, item.OwnerID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return nil, errors.OwnerProfileUnavailable(item.OwnerID)
			}
			return nil, err
		}
	}

	c.state.selectedItem = item
	c.state.selectedOwner = owner
	c.setState(StateViewingOwner)
	return &ScanResult{Item: item, Owner: owner}, nil
}

// RequestReturn opens the yes/no gate for marking the selected item returned.
// The transition is irreversible, so nothing is written until confirmation.
func (c *Controller) RequestReturn() error {
	return c.run(func() error {
		if c.state.current != StateViewingOwner || c.state.selectedItem == nil {
			return errors.BadRequest("no item selected for return", nil)
		}
		if c.state.selectedItem.Status != entity.ItemStatusMissing {
			return errors.BadRequest("item is already marked returned", nil)
		}
		c.state.pendingReturn = c.state.selectedItem.ID
		return nil
	})
}

// ConfirmReturn resolves the pending gate. Declining is free; confirming
// issues the single-field status write. The new status becomes visible only
// through the registry subscription.
func (c *Controller) ConfirmReturn(confirmed bool) error {
	return c.run(func() error {
		if c.state.pendingReturn == "" {
			return errors.BadRequest("no return awaiting confirmation", nil)
		}
		id := c.state.pendingReturn
		c.state.pendingReturn = ""

		if !confirmed {
			return nil
		}

		if item, ok := c.state.items[id]; ok && item.Status == entity.ItemStatusReturned {
			// Already returned; converging on the same value is a no-op.
			return nil
		}

		return c.deps.Items.SetStatus(c.runCtx, id, entity.ItemStatusReturned)
	})
}

// InitiateContact opens (or rejoins) the conversation with the selected
// item's owner. The deterministic chat id plus merge upsert makes this
// idempotent from either side.
func (c *Controller) InitiateContact() (*entity.Chat, error) {
	var chat *entity.Chat
	err := c.run(func() error {
		if c.state.current != StateViewingOwner || c.state.selectedItem == nil || c.state.selectedOwner == nil {
			return errors.BadRequest("no owner selected", nil)
		}
		if c.state.selectedItem.Status != entity.ItemStatusMissing {
			return errors.BadRequest("contact is only available while the item is missing", nil)
		}

		chat = entity.NewChat(c.state.uid, c.state.selectedOwner.ID, c.state.selectedItem.ID)
		if err := c.deps.Chats.Upsert(c.runCtx, chat); err != nil {
			chat = nil
			return err
		}

		c.state.selectedChat = chat
		c.setState(StateChatting)
		c.establishMessageSubscription(chat.ID)
		return nil
	})
	return chat, err
}

// SelectChat re-points the message subscription at a different thread while
// staying in the chat view.
func (c *Controller) SelectChat(chatID string) error {
	return c.run(func() error {
		if c.state.current != StateChatting {
			return errors.BadRequest("not in a chat view", nil)
		}
		chat, ok := c.state.chats[chatID]
		if !ok || !chat.HasParticipant(c.state.uid) {
			return errors.NotFound("Chat", nil)
		}
		if c.state.selectedChat != nil && c.state.selectedChat.ID == chatID {
			return nil
		}
		c.state.selectedChat = chat
		c.state.messages = nil
		c.establishMessageSubscription(chatID)
		return nil
	})
}

// SendMessage appends to the selected thread. The message shows up for both
// participants through the message subscription, sender included.
func (c *Controller) SendMessage(text string) error {
	return c.run(func() error {
		if c.state.current != StateChatting || c.state.selectedChat == nil {
			return errors.BadRequest("no chat selected", nil)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return errors.InputInvalid("message text is required")
		}

		message := &entity.Message{
			ChatID:   c.state.selectedChat.ID,
			SenderID: c.state.uid,
			Text:     text,
		}
		_, err := c.deps.Chats.AppendMessage(c.runCtx, message)
		return err
	})
}

func (c *Controller) establishBaseSubscriptions() {
	c.teardown(subItems, subProfiles, subChats, subMessages)
	uid := c.state.uid

	c.subs[subItems] = c.deps.Items.Subscribe(c.runCtx,
		func(items map[string]*entity.Item) {
			c.post(func() { c.applyItems(items) })
		},
		func(err error) {
			c.post(func() { c.surface(err) })
		},
	)

	c.subs[subProfiles] = c.deps.Users.Subscribe(c.runCtx, uid, c.deps.ProfilePageSize,
		func(users map[string]*entity.User) {
			c.post(func() { c.applyProfiles(users) })
		},
		func(err error) {
			c.post(func() { c.surface(err) })
		},
	)

	c.subs[subChats] = c.deps.Chats.SubscribeByParticipant(c.runCtx, uid,
		func(chats map[string]*entity.Chat) {
			c.post(func() { c.applyChats(chats) })
		},
		func(err error) {
			c.post(func() { c.surface(err) })
		},
	)
}

func (c *Controller) establishMessageSubscription(chatID string) {
	c.teardown(subMessages)

	c.subs[subMessages] = c.deps.Chats.SubscribeMessages(c.runCtx, chatID,
		func(messages []*entity.Message) {
			c.post(func() { c.applyMessages(chatID, messages) })
		},
		func(err error) {
			c.post(func() { c.surface(err) })
		},
	)
}

func (c *Controller) teardown(purposes ...string) {
	for _, p := range purposes {
		if sub, ok := c.subs[p]; ok {
			sub.Cancel()
			delete(c.subs, p)
		}
	}
}

func (c *Controller) shutdown() {
	c.teardown(subItems, subProfiles, subChats, subMessages)
	c.Close()
}

// applyItems installs the authoritative registry snapshot, reconciling any
// optimistic local selection, and republishes the derived owner view.
func (c *Controller) applyItems(items map[string]*entity.Item) {
	c.state.items = items
	if c.state.selectedItem != nil {
		if current, ok := items[c.state.selectedItem.ID]; ok {
			c.state.selectedItem = current
		}
	}

	var mine []*entity.Item
	for _, item := range items {
		if item.OwnerID == c.state.uid {
			mine = append(mine, item)
		}
	}
	entity.SortOwnerItems(mine)
	c.sink.MyItemsChanged(mine)
}

func (c *Controller) applyProfiles(users map[string]*entity.User) {
	c.state.profiles = users
	if self, ok := users[c.state.uid]; ok {
		c.state.profile = self
	}
	if c.state.selectedOwner != nil {
		if current, ok := users[c.state.selectedOwner.ID]; ok {
			c.state.selectedOwner = current
		}
	}
}

func (c *Controller) applyChats(chats map[string]*entity.Chat) {
	c.state.chats = chats
	if c.state.selectedChat != nil {
		if current, ok := chats[c.state.selectedChat.ID]; ok {
			c.state.selectedChat = current
		}
	}

	sorted := make([]*entity.Chat, 0, len(chats))
	for _, chat := range chats {
		sorted = append(sorted, chat)
	}
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].LastActivityAt.After(sorted[b].LastActivityAt)
	})
	c.sink.ChatsChanged(sorted)
}

// applyMessages drops stale callbacks from a superseded subscription.
func (c *Controller) applyMessages(chatID string, messages []*entity.Message) {
	if c.state.current != StateChatting || c.state.selectedChat == nil || c.state.selectedChat.ID != chatID {
		return
	}
	c.state.messages = messages
	c.sink.MessagesChanged(chatID, messages)
}
