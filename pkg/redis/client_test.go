package redis

import (
	"testing"
	"time"

	"github.com/tillpointhq/tillpoint-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:      "redis://:pw@redis.internal:6380/2",
		PoolSize: 15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "redis.internal:6380" || opts.DB != 2 || opts.Password != "pw" {
		t.Fatalf("url not applied: %+v", opts)
	}
	if opts.PoolSize != 15 {
		t.Fatalf("pool size override lost: %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	t.Parallel()

	opts, err := optionsFromConfig(config.RedisConfig{
		Address:     "localhost:6379",
		DB:          1,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 1 {
		t.Fatalf("address not applied: %+v", opts)
	}
	if opts.DialTimeout != 2*time.Second {
		t.Fatalf("dial timeout lost: %v", opts.DialTimeout)
	}
}

func TestOptionsFromConfigRejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{URL: "://broken"}); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestIdempotencyKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{}
	key := c.IdempotencyKey("op|POST|/api/v1/checkout", "abc-123")
	if key != "tp:idempotency:op|POST|/api/v1/checkout:abc-123" {
		t.Fatalf("unexpected key %q", key)
	}
}
