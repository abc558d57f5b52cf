// Package session carries the caller identity resolved by the auth middleware.
package session

import (
	"context"

	"guesthouse/shared/constant"
)

type sessionKey struct{}

// Session is the authenticated caller of a request. Role is the role read from
// the database when the session was resolved and may be empty.
type Session struct {
	UserID  string
	Email   string
	Role    string
	TokenID string
}

func NewContext(ctx context.Context, s Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey{}, s)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, s.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, s.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, s.TokenID)

	if s.Role != "" {
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, s.Role)
	}

	return ctx
}

// FromContext returns the session stored in ctx. The zero Session is returned
// for anonymous requests.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)

	return s
}

func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}

func (s Session) RoleResolved() bool {
	return s.Role != ""
}

// Actor is the name recorded in created_by/modified_by columns.
func (s Session) Actor() string {
	if s.Email != "" {
		return s.Email
	}

	return constant.ContextGuest
}
