package usecase

import (
	"fmt"
	"strconv"

	"github.com/moby/locker"
)

// gameweekLocks serializes work on the same gameweek inside one process.
type gameweekLocks struct {
	named *locker.Locker
}

func newGameweekLocks() *gameweekLocks {
	return &gameweekLocks{named: locker.New()}
}

func (l *gameweekLocks) lock(gameweek int) func() {
	key := strconv.Itoa(gameweek)
	l.named.Lock(key)
	return func() {
		_ = l.named.Unlock(key)
	}
}

func validateGameweek(gameweek int) error {
	if gameweek <= 0 {
		return fmt.Errorf("%w: gameweek must be greater than zero, got %d", ErrInvalidInput, gameweek)
	}
	return nil
}
