package redis

import (
	"context"
	"log"
	"time"

	"Bluff/game"
	redis_utils "Bluff/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// Lock tuning. The TTL bounds how long a crashed request can keep a game
// locked; the retry interval bounds how hard waiters hammer Redis.
const (
	lockTTL       = 10 * time.Second
	lockRetryWait = 50 * time.Millisecond
)

// releaseScript deletes the lock key only if this holder still owns it, so
// an expired-and-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

/*
 * 'GameLocker' is the Redis-backed game.Locker: one SETNX key per game
 * with a TTL, acquired with a bounded retry loop. It serializes actions on
 * a game across every server process sharing the Redis instance.
 */
type GameLocker struct {
	rc   *RedisClient
	wait time.Duration
}

func NewGameLocker(rc *RedisClient, wait time.Duration) *GameLocker {
	return &GameLocker{rc: rc, wait: wait}
}

func (l *GameLocker) AcquireGame(ctx context.Context, gameID uint) (func(), error) {
	key := redis_utils.FormatGameLockKey(gameID)
	token := redis_utils.LockToken()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rc.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, &game.Error{Op: "redis.GameLocker", Code: game.CodeStorage, Err: err}
		}
		if ok {
			release := func() {
				if err := releaseScript.Run(l.rc.ctx, l.rc.client, []string{key}, token).Err(); err != nil {
					log.Printf("Error releasing lock for game %d: %v", gameID, err)
				}
			}
			return release, nil
		}
		if time.Now().After(deadline) {
			return nil, &game.Error{Op: "redis.GameLocker", Code: game.CodeContention, Msg: "game is busy, retry"}
		}
		select {
		case <-time.After(lockRetryWait):
		case <-ctx.Done():
			return nil, &game.Error{Op: "redis.GameLocker", Code: game.CodeContention, Err: ctx.Err()}
		}
	}
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return &game.Error{Op: "redis.CleanupKeys", Code: game.CodeStorage, Err: err}
		}
	}
	return nil
}
