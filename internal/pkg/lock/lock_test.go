package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_ExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	release, err := l.Acquire(ctx, "clock:emp-1", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "clock:emp-1", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	// Other keys are independent.
	releaseOther, err := l.Acquire(ctx, "clock:emp-2", time.Minute)
	require.NoError(t, err)
	releaseOther()

	release()
	release2, err := l.Acquire(ctx, "clock:emp-1", time.Minute)
	require.NoError(t, err)
	release2()
}

func TestLocalLocker_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	_, err := l.Acquire(ctx, "k", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	release, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	release()
}

func TestLocalLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	staleRelease, err := l.Acquire(ctx, "k", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	release, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	defer release()

	staleRelease()

	_, err = l.Acquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)
}
