package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fanmeet-engine/utils"

	"github.com/redis/go-redis/v9"
)

// Locker grants a job run to at most one engine instance per ttl
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// LocalLocker serializes job runs inside one process
type LocalLocker struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{until: make(map[string]time.Time), now: time.Now}
}

// TryLock takes key for ttl unless another holder still has it
func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, ok := l.until[key]; ok && now.Before(until) {
		return false, nil
	}
	l.until[key] = now.Add(ttl)
	return true, nil
}

// RedisLocker coordinates job runs across engine instances with SET NX PX
type RedisLocker struct {
	client *redis.Client
	owner  string
}

// NewRedisLocker connects to the redis at url and checks it is reachable
func NewRedisLocker(ctx context.Context, url string) (*RedisLocker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("scheduler: parse redis url: %w", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("scheduler: ping redis: %w", err)
	}
	return &RedisLocker{client: client, owner: utils.GenerateID()}, nil
}

// TryLock sets key if absent; the key expires after ttl
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, "fanmeet:lock:"+key, l.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("scheduler: lock %s: %w", key, err)
	}
	return ok, nil
}

// Close releases the redis connection pool
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
