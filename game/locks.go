package game

import (
	"context"
	"sync"
	"time"
)

/*
 * 'Locker' serializes actions on a single game. Turn order, hands and the
 * declaration are read-then-written, so two concurrent requests for the
 * same game must be mutually exclusive for the duration of one action.
 */
type Locker interface {
	// AcquireGame blocks for a bounded time. On success the returned
	// release function must be called exactly once; on contention the
	// error carries CodeContention and the caller may retry.
	AcquireGame(ctx context.Context, gameID uint) (release func(), err error)
}

/*
 * 'KeyedLocker' is the in-process Locker: one slot per game id, bounded
 * wait. Games are independent units of state, so slots never interact.
 */
type KeyedLocker struct {
	mu    sync.Mutex
	slots map[uint]chan struct{}
	wait  time.Duration
}

func NewKeyedLocker(wait time.Duration) *KeyedLocker {
	return &KeyedLocker{slots: make(map[uint]chan struct{}), wait: wait}
}

func (l *KeyedLocker) slot(gameID uint) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[gameID]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[gameID] = s
	}
	return s
}

func (l *KeyedLocker) AcquireGame(ctx context.Context, gameID uint) (func(), error) {
	s := l.slot(gameID)
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-timer.C:
		return nil, fail("game.lock", CodeContention, "game is busy, retry")
	case <-ctx.Done():
		return nil, &Error{Op: "game.lock", Code: CodeContention, Err: ctx.Err()}
	}
}
