// File: utils/lock.go
package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// releaseScript deletes the lock key only if it still holds our token, so an
// expired lock re-acquired by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// AcquireLock attempts to take an advisory lock on the given key. It returns a
// release function on success, or ok=false when another holder owns the lock.
// The TTL bounds the damage of a crashed holder.
func AcquireLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error) {
	client := GetLockClient()
	token := uuid.New().String()

	acquired, err := client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}

	release = func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			GetLogger().Warn("failed to release advisory lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}
