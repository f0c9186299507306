package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker hands out exclusive, non-blocking locks. A held key yields
// ErrGenerationInProgress instead of waiting.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

func GenerationLockKey(organizationID, adminID string, month, year int) string {
	return fmt.Sprintf("payroll:generate:%s:%s:%04d-%02d", organizationID, adminID, year, month)
}

// NewLocker uses Redis when a client is configured and an in-process lock
// otherwise.
func NewLocker(rdb *redis.Client) Locker {
	if rdb == nil {
		return NewLocalLocker()
	}
	return &redisLocker{rdb: rdb}
}

type redisLocker struct {
	rdb *redis.Client
}

// releaseLock deletes the key only while it still holds our token, so an
// expired lock taken over by another run is left alone.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, payrollerrors.ErrGenerationInProgress
	}

	return func() {
		_ = releaseLock.Run(context.WithoutCancel(ctx), l.rdb, []string{key}, token).Err()
	}, nil
}

type localLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() Locker {
	return &localLocker{held: make(map[string]struct{})}
}

func (l *localLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, payrollerrors.ErrGenerationInProgress
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
