package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, StateUnauthenticated.CanTransition(StateAwaitingIdentity))
	assert.True(t, StateScanning.CanTransition(StateViewingOwner))
	assert.True(t, StateViewingOwner.CanTransition(StateChatting))
	assert.True(t, StateChatting.CanTransition(StateViewingOwner))

	assert.False(t, StateUnauthenticated.CanTransition(StateDashboard))
	assert.False(t, StateDashboard.CanTransition(StateViewingOwner))
	assert.False(t, StateChatting.CanTransition(StateDashboard))
	assert.False(t, StateViewingItemCode.CanTransition(StateScanning))
}

func TestEveryAuthenticatedStateCanSignOut(t *testing.T) {
	for from := range transitions {
		if !from.Authenticated() {
			continue
		}
		assert.True(t, from.CanTransition(StateUnauthenticated), "state %s cannot sign out", from)
	}
}

func TestBackTargetsAreLegalTransitions(t *testing.T) {
	for from, to := range backTargets {
		assert.True(t, from.CanTransition(to), "back from %s to %s is not a legal transition", from, to)
	}
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, StateUnauthenticated.Authenticated())
	assert.False(t, StateAwaitingIdentity.Authenticated())
	assert.True(t, StateNeedsProfile.Authenticated())
	assert.True(t, StateDashboard.Authenticated())
	assert.True(t, StateChatting.Authenticated())
}
