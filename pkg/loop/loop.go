package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a task returns.
type Next struct {
	// if not nil, the loop breaks with this error.
	err error

	// if quit is true and err is nil, the loop breaks without error.
	quit bool

	// otherwise, the loop continues after interval.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}
	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Continue the loop; the task will run again after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break the loop. Pass nil to break without error.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is a single step of a loop.
//
// It receives the value the previous step returned and decides,
// via Next, whether the loop keeps going.
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task repeatedly until it returns Break(...) or ctx is done.
//
// The task is first called as task(ctx, init). Each subsequent call
// receives the value returned by the previous one, so the loop can carry
// state without sharing anything outside itself.
//
// Returns the last value the task returned, and the error from Break(err)
// or ctx.Err() when the context was cancelled between steps.
func Start[T any](ctx context.Context, init T, task Task[T]) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		v, n := task(ctx, value)
		if n.err != nil {
			return v, n.err
		}
		if n.quit {
			return v, nil
		}
		value = v

		timer := time.NewTimer(n.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C // drain. see time.Timer.Stop
			}
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}
