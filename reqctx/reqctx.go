// Package reqctx carries per-request caller identity and a data-store
// handle through context.Context, so tool callables invoked deep inside the
// agent loop can reach them without threading extra parameters through every
// call in between.
//
// There is no package-global state here: every value lives on the
// context.Context the gin middleware constructs at request entry, and
// WithCaller/WithStore always return a derived context rather than mutating
// one in place.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type callerKey struct{}
type storeKey struct{}

// Store is the minimal persistence handle tool callables need: the two
// stores scoped to one caller. The concrete implementation is httpapi's
// requestStore, which pairs skill.Service with store/mongo's McpStore.
type Store interface {
	Skills() SkillStore
	MCPs() MCPStore
}

// SkillStore and MCPStore are declared here, rather than imported from
// package skill/mcpconfig, to keep reqctx free of a dependency on either
// domain package; skill.Service implements SkillStore and store/mongo's
// McpStore implements MCPStore.
type SkillStore interface {
	GetContentByName(ctx context.Context, userID uuid.UUID, name string) (string, bool, error)
	UpdateByName(ctx context.Context, userID uuid.UUID, name, description, body string) (bool, error)
}

type MCPStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]any, error)
}

// WithCaller returns a context carrying the authenticated caller's user id.
func WithCaller(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

// Caller returns the user id bound to ctx, or false if none was ever bound
// (an unauthenticated or tool-less context).
func Caller(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return v, ok
}

// WithStore returns a context carrying the data-store handle.
func WithStore(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// StoreFrom returns the data-store handle bound to ctx, or false if none was
// ever bound.
func StoreFrom(ctx context.Context) (Store, bool) {
	v, ok := ctx.Value(storeKey{}).(Store)
	return v, ok
}
