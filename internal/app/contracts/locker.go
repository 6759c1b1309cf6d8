package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	// Unlock releases the lock only when it is still owned by lockValue
	Unlock(ctx context.Context, key, lockValue string) error
}
