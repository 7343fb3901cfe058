// Package security provides authorization and access control.
package security

import (
	"context"

	appctx "quarryledger/internal/core/context"
)

// Role defines the two roles in the system.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleClerk Role = "CLERK"
)

// ViewScope defines the boundaries of data visibility for the current
// request: either everything (admin) or records owned by one user.
// A single ViewScope value is threaded through every query and
// aggregation entry point instead of re-deriving role checks per call
// site.
type ViewScope struct {
	userID string
	admin  bool
}

// AdminScope sees every record.
func AdminScope() ViewScope {
	return ViewScope{admin: true}
}

// OwnedBy restricts visibility to records created by userID.
func OwnedBy(userID string) ViewScope {
	return ViewScope{userID: userID}
}

// ScopeFor derives the scope for a role and user.
func ScopeFor(role Role, userID string) ViewScope {
	if role == RoleAdmin {
		return AdminScope()
	}
	return OwnedBy(userID)
}

// ScopeFromContext derives the scope from the authenticated user in ctx.
// An unauthenticated context yields a scope that sees nothing.
func ScopeFromContext(ctx context.Context) ViewScope {
	user := appctx.GetUser(ctx)
	if user == nil {
		return ViewScope{}
	}
	return ScopeFor(Role(user.Role), user.UserID)
}

// IsAdmin reports whether the scope is unrestricted.
func (s ViewScope) IsAdmin() bool {
	return s.admin
}

// UserID returns the owning user for a clerk scope, empty for admin.
func (s ViewScope) UserID() string {
	return s.userID
}

// CanSee reports whether a record created by createdBy is visible.
func (s ViewScope) CanSee(createdBy string) bool {
	if s.admin {
		return true
	}
	return s.userID != "" && createdBy == s.userID
}

// CanSeeQuarry reports whether a quarry is visible. Clerks see their
// own quarries plus legacy quarries with no owner set.
func (s ViewScope) CanSeeQuarry(ownerID string) bool {
	if s.admin {
		return true
	}
	if s.userID == "" {
		return false
	}
	return ownerID == "" || ownerID == s.userID
}
