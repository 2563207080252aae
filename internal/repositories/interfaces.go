package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrBlobNotFound is returned when a key is missing or expired.
var ErrBlobNotFound = errors.New("blob not found")

const (
	sessionKeyPrefix = "assessment:session:"
	handoffKeyPrefix = "quickcheck:handoff:"
)

// BlobStore keeps opaque JSON documents under string keys.
// A ttl of zero means the document does not expire.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SessionKey is the storage key of an assessment session.
func SessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// HandoffKey is the storage key of a quick-quiz snapshot awaiting pickup.
func HandoffKey(key string) string {
	return handoffKeyPrefix + key
}
