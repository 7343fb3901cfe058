package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewScopeAdmin(t *testing.T) {
	s := AdminScope()

	assert.True(t, s.IsAdmin())
	assert.True(t, s.CanSee("anyone"))
	assert.True(t, s.CanSeeQuarry(""))
	assert.True(t, s.CanSeeQuarry("someone-else"))
}

func TestViewScopeOwnedBy(t *testing.T) {
	s := OwnedBy("u1")

	assert.False(t, s.IsAdmin())
	assert.True(t, s.CanSee("u1"))
	assert.False(t, s.CanSee("u2"))
	assert.False(t, s.CanSee(""))
}

func TestViewScopeQuarryIncludesUnassigned(t *testing.T) {
	s := OwnedBy("u1")

	assert.True(t, s.CanSeeQuarry("u1"))
	assert.True(t, s.CanSeeQuarry(""), "legacy quarries with no owner are visible to every clerk")
	assert.False(t, s.CanSeeQuarry("u2"))
}

func TestScopeForRole(t *testing.T) {
	assert.True(t, ScopeFor(RoleAdmin, "u1").IsAdmin())
	assert.False(t, ScopeFor(RoleClerk, "u1").IsAdmin())
	assert.Equal(t, "u1", ScopeFor(RoleClerk, "u1").UserID())
}

func TestUnauthenticatedScopeSeesNothing(t *testing.T) {
	var s ViewScope

	assert.False(t, s.CanSee("u1"))
	assert.False(t, s.CanSeeQuarry(""))
}
