package cache

import (
	"context"
	"fmt"
	"time"
)

// Scope selects how long cached options outlive the process that loaded them.
type Scope int

const (
	// ScopeSession keeps entries in process memory, shared by every control of the process.
	ScopeSession Scope = iota
	// ScopePersistent keeps entries in Redis so they survive restarts and are shared between instances.
	ScopePersistent
)

func (s Scope) String() string {
	if s == ScopePersistent {
		return "persistent"
	}
	return "session"
}

func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "session":
		return ScopeSession, nil
	case "persistent":
		return ScopePersistent, nil
	default:
		return ScopeSession, fmt.Errorf("unknown cache scope %q", s)
	}
}

// Storage is a byte store with TTLs. Get returns (value, true, nil) on hit and
// (nil, false, nil) on miss; I/O failures are reported as errors.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
