package port

import (
	"context"
	"time"
)

// CachePort stores values under string keys with a time to live. Get returns
// (nil, nil) on a miss.
//
//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type CachePort[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, value *T, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value *T, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}
