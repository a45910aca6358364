package migration

import (
	"context"
	"fmt"
)

// Clock reads the runtime's unix timestamp.
type Clock interface {
	UnixTimestamp(ctx context.Context) (int64, error)
}

type ClockFunc func(ctx context.Context) (int64, error)

func (f ClockFunc) UnixTimestamp(ctx context.Context) (int64, error) {
	return f(ctx)
}

// OpenTime converts the clock reading to the pool open time. Negative readings are rejected.
func OpenTime(ctx context.Context, clock Clock) (uint64, error) {
	if clock == nil {
		return 0, ErrClockUnavailable
	}
	ts, err := clock.UnixTimestamp(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClockUnavailable, err)
	}
	if ts < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeTimestamp, ts)
	}
	return uint64(ts), nil
}
