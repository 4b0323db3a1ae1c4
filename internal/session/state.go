package session

// State is the current view of a user session. The machine has no terminal
// state; it runs for the lifetime of the session.
type State string

const (
	StateUnauthenticated  State = "unauthenticated"
	StateAwaitingIdentity State = "awaiting-identity"
	StateNeedsProfile     State = "needs-profile"
	StateDashboard        State = "dashboard"
	StateComposingItem    State = "composing-item"
	StateViewingItemCode  State = "viewing-item-code"
	StateScanning         State = "scanning"
	StateViewingOwner     State = "viewing-owner"
	StateChatting         State = "chatting"
)

var transitions = map[State][]State{
	StateUnauthenticated:  {StateAwaitingIdentity},
	StateAwaitingIdentity: {StateNeedsProfile, StateDashboard, StateUnauthenticated},
	StateNeedsProfile:     {StateDashboard, StateUnauthenticated},
	StateDashboard:        {StateComposingItem, StateScanning, StateUnauthenticated},
	StateComposingItem:    {StateDashboard, StateViewingItemCode, StateUnauthenticated},
	StateViewingItemCode:  {StateDashboard, StateUnauthenticated},
	StateScanning:         {StateDashboard, StateViewingItemCode, StateViewingOwner, StateUnauthenticated},
	StateViewingOwner:     {StateChatting, StateDashboard, StateUnauthenticated},
	StateChatting:         {StateViewingOwner, StateUnauthenticated},
}

// CanTransition reports whether moving to the target state is legal.
func (s State) CanTransition(to State) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Authenticated reports whether the state has a resolved principal.
func (s State) Authenticated() bool {
	switch s {
	case StateUnauthenticated, StateAwaitingIdentity:
		return false
	}
	return true
}

// backTargets maps each state to where explicit back navigation lands.
var backTargets = map[State]State{
	StateComposingItem:   StateDashboard,
	StateScanning:        StateDashboard,
	StateViewingItemCode: StateDashboard,
	StateViewingOwner:    StateDashboard,
	StateChatting:        StateViewingOwner,
}
