// File: utils/lock.go
package utils

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const bookingLockPrefix = "bookingLock:"

// releaseScript deletes a lock key only when it still holds our token, so an
// expired lock re-acquired by another booking is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisStaffLocker serializes bookings per staff member using Redis SET NX PX.
type RedisStaffLocker struct {
	Client  *redis.Client
	TTL     time.Duration
	MaxWait time.Duration
	Retry   time.Duration
}

// NewRedisStaffLocker builds a locker with sane booking-path defaults.
func NewRedisStaffLocker(client *redis.Client) *RedisStaffLocker {
	return &RedisStaffLocker{
		Client:  client,
		TTL:     15 * time.Second,
		MaxWait: 5 * time.Second,
		Retry:   100 * time.Millisecond,
	}
}

// AcquireStaff locks every staff id in the set, always in ascending order so
// two concurrent bookings sharing staff members cannot deadlock. The returned
// release function is safe to call exactly once.
func (l *RedisStaffLocker) AcquireStaff(ctx context.Context, staffIDs []int) (func(), error) {
	ids := append([]int(nil), staffIDs...)
	sort.Ints(ids)

	token := uuid.New().String()
	var held []string

	release := func() {
		bg := context.Background()
		for _, key := range held {
			if err := releaseScript.Run(bg, l.Client, []string{key}, token).Err(); err != nil && err != redis.Nil {
				GetLogger().Sugar().Warnf("failed to release booking lock %s: %v", key, err)
			}
		}
	}

	deadline := time.Now().Add(l.MaxWait)
	for _, id := range ids {
		key := fmt.Sprintf("%s%d", bookingLockPrefix, id)
		for {
			ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
			if err != nil {
				release()
				return nil, fmt.Errorf("booking lock error for staff %d: %w", id, err)
			}
			if ok {
				held = append(held, key)
				break
			}
			if time.Now().After(deadline) {
				release()
				return nil, fmt.Errorf("timed out waiting for booking lock on staff %d", id)
			}
			select {
			case <-ctx.Done():
				release()
				return nil, ctx.Err()
			case <-time.After(l.Retry):
			}
		}
	}

	return release, nil
}
