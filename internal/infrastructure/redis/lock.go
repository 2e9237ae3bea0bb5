package redisstore

import (
	"context"
	"time"

	"pricehistory-service/internal/application"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ application.SyncLock = (*Lock)(nil)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a SyncLock shared by every process using the same Redis.
// TTL bounds how long a crashed holder can block others.
type Lock struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
	Log    *zap.Logger
}

func NewLock(client *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{Client: client, Key: key, TTL: ttl}
}

func (l *Lock) TryAcquire(ctx context.Context) (bool, func(), error) {
	token := uuid.NewString()
	ok, err := l.Client.SetNX(ctx, l.Key, token, l.TTL).Result()
	if err != nil {
		return false, func() {}, err
	}
	if !ok {
		return false, func() {}, nil
	}
	release := func() {
		// ctx may already be canceled by the time the cycle ends
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.Client, []string{l.Key}, token).Err(); err != nil && l.Log != nil {
			l.Log.Warn("lock.release_failed", zap.String("key", l.Key), zap.Error(err))
		}
	}
	return true, release, nil
}
