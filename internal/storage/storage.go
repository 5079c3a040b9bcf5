package storage

import (
	"context"
	"time"
)

// Signer mints time-limited read URLs for private storage objects.
type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}
