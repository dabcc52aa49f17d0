package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache(unreachable) error = %v, want ErrNetwork", err)
	}
}
