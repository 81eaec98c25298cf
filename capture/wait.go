package capture

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ConditionFunc reports whether a polled condition holds.
type ConditionFunc func(ctx context.Context) (bool, error)

// WaitUntil polls cond every interval until it returns true or timeout
// elapses. Running out of time is not an error: ready is false and the
// caller proceeds anyway. Errors from cond and cancellation of ctx are
// returned as-is. A non-positive timeout evaluates cond exactly once.
func WaitUntil(ctx context.Context, timeout, interval time.Duration, cond ConditionFunc) (ready bool, err error) {
	if timeout <= 0 {
		return cond(ctx)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(waitCtx); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, nil
		}

		ok, err := cond(waitCtx)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if waitCtx.Err() != nil && errors.Is(err, context.DeadlineExceeded) {
				return false, nil
			}
			return false, err
		}
		if ok {
			return true, nil
		}
	}
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
