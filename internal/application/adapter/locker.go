// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Locker provides short-lived exclusive locks keyed by name.
type Locker interface {
	// TryLock acquires key for ttl. ok is false when someone else holds it.
	// The returned release function is safe to call once ok is true.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
