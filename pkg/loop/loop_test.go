package loop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tesserabio/tessera/pkg/loop"
)

func TestStart(t *testing.T) {
	t.Run("it carries the value between steps and breaks without error", func(t *testing.T) {
		ctx := context.Background()

		actual, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				v += 1
				if 10 <= v {
					return v, loop.Break(nil)
				}
				return v, loop.Continue(0)
			},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if actual != 10 {
			t.Errorf("wrong value: (actual, expected) = (%d, 10)", actual)
		}
	})

	t.Run("it breaks with the error passed to Break", func(t *testing.T) {
		ctx := context.Background()
		expectedErr := errors.New("fake error")

		actual, err := loop.Start(
			ctx, "init", func(_ context.Context, v string) (string, loop.Next) {
				return "last", loop.Break(expectedErr)
			},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("wrong error: (actual, expected) = (%v, %v)", err, expectedErr)
		}
		if actual != "last" {
			t.Errorf("wrong value: (actual, expected) = (%s, last)", actual)
		}
	})

	t.Run("it stops when context is cancelled between steps", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		count := 0
		actual, err := loop.Start(
			ctx, 0, func(_ context.Context, v int) (int, loop.Next) {
				count += 1
				if count == 3 {
					cancel()
				}
				return v + 1, loop.Continue(time.Millisecond)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("wrong error: (actual, expected) = (%v, %v)", err, context.Canceled)
		}
		if actual != 3 {
			t.Errorf("wrong value: (actual, expected) = (%d, 3)", actual)
		}
	})

	t.Run("it does not run the task at all when context is already done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		actual, err := loop.Start(
			ctx, 42, func(_ context.Context, v int) (int, loop.Next) {
				called = true
				return v, loop.Break(nil)
			},
		)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("wrong error: (actual, expected) = (%v, %v)", err, context.Canceled)
		}
		if called {
			t.Error("task should not be called")
		}
		if actual != 42 {
			t.Errorf("wrong value: (actual, expected) = (%d, 42)", actual)
		}
	})
}
