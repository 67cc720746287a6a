package usecase

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGameweekLocks_SerializesSameGameweek(t *testing.T) {
	t.Parallel()

	locks := newGameweekLocks()
	unlock := locks.lock(7)

	var acquired atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		release := locks.lock(7)
		acquired.Store(true)
		release()
	}()

	time.Sleep(50 * time.Millisecond)
	require.False(t, acquired.Load())

	unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second lock on the same gameweek was never granted")
	}
	require.True(t, acquired.Load())
}

func TestGameweekLocks_OtherGameweekDoesNotBlock(t *testing.T) {
	t.Parallel()

	locks := newGameweekLocks()
	unlock := locks.lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		release := locks.lock(2)
		release()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on gameweek 2 waited for gameweek 1")
	}
}
