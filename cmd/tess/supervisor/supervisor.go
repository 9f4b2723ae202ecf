package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/logger"
	"github.com/tesserabio/tessera/pkg/loop"
)

// ErrInterrupted is returned by Run when the context is cancelled.
//
// Already-submitted remote jobs keep running; the checkpoint reflects the
// last persisted transition and the run can be resumed against it.
var ErrInterrupted = errors.New("supervised run interrupted")

// DefaultInterval is the pause between polling ticks.
const DefaultInterval = 20 * time.Second

// DefaultMaxRetries bounds how often a failing remote call is retried
// before the node is marked Failed.
const DefaultMaxRetries = 3

// Outcome of polling a remote job.
type Outcome string

const (
	OutcomeRunning   Outcome = "running"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Launcher talks to the remote platform for the supervisor.
//
// Submit starts the job described by node and returns a handle to poll it
// with. Poll reports where the remote job stands. Errors from either are
// treated as transient and retried with backoff.
type Launcher interface {
	Submit(ctx context.Context, node JobNode) (handle string, err error)
	Poll(ctx context.Context, handle string) (Outcome, error)
}

type Supervisor struct {
	launcher   Launcher
	interval   time.Duration
	maxRetries uint64
	newBackoff func() backoff.BackOff
	logger     *log.Logger
}

type Option func(*Supervisor) *Supervisor

// WithInterval sets the pause between polling ticks.
func WithInterval(d time.Duration) Option {
	return func(s *Supervisor) *Supervisor {
		s.interval = d
		return s
	}
}

// WithMaxRetries sets how often a failing remote call is retried.
func WithMaxRetries(n uint64) Option {
	return func(s *Supervisor) *Supervisor {
		s.maxRetries = n
		return s
	}
}

// WithBackoff sets the factory for per-call backoff policies.
func WithBackoff(factory func() backoff.BackOff) Option {
	return func(s *Supervisor) *Supervisor {
		s.newBackoff = factory
		return s
	}
}

// WithLogger sets the progress logger. Progress is not logged by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Supervisor) *Supervisor {
		s.logger = l
		return s
	}
}

func New(launcher Launcher, options ...Option) *Supervisor {
	s := &Supervisor{
		launcher:   launcher,
		interval:   DefaultInterval,
		maxRetries: DefaultMaxRetries,
		newBackoff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     logger.Null(),
	}
	for _, opt := range options {
		s = opt(s)
	}
	return s
}

// Run drives state to completion, checkpointing to checkpointPath after
// every state change.
//
// On each tick it polls every Submitted/Running node, then submits every
// Pending node whose dependencies have all succeeded. It returns once
// every node is terminal or permanently blocked.
//
// A checkpoint write failure is fatal: no transition may outlive the
// process without being persisted. Context cancellation returns
// ErrInterrupted; the checkpoint on disk is current at that point.
//
// The returned Report is valid even when err is not nil.
func (s *Supervisor) Run(ctx context.Context, state *RunState, checkpointPath string) (Report, error) {
	if err := validateGraph(state.Nodes); err != nil {
		return NewReport(state), err
	}

	// persist the starting point so an immediate crash is already resumable
	if err := state.Save(checkpointPath); err != nil {
		return NewReport(state), fmt.Errorf("cannot write checkpoint: %w", err)
	}

	state, err := loop.Start(ctx, state, func(ctx context.Context, st *RunState) (*RunState, loop.Next) {
		for _, node := range st.Nodes {
			if node.Status != Submitted && node.Status != Running {
				continue
			}
			if err := s.pollNode(ctx, st, node, checkpointPath); err != nil {
				return st, loop.Break(err)
			}
		}

		for _, node := range st.Nodes {
			if !st.Ready(node.Name) {
				continue
			}
			if err := s.submitNode(ctx, st, node, checkpointPath); err != nil {
				return st, loop.Break(err)
			}
		}

		if st.Settled() {
			return st, loop.Break(nil)
		}
		return st, loop.Continue(s.interval)
	})

	report := NewReport(state)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return report, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		return report, err
	}
	return report, nil
}

// submitNode submits one ready node. A remote error surviving retries
// marks the node Failed; only checkpoint failures and cancellation are
// returned as errors.
func (s *Supervisor) submitNode(ctx context.Context, st *RunState, node *JobNode, checkpointPath string) error {
	var handle string
	err := s.withRetry(ctx, node, func() error {
		h, err := s.launcher.Submit(ctx, *node)
		if err != nil {
			return err
		}
		handle = h
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Printf("job %s: submission failed: %s", node.Name, err)
		node.Status = Failed
	} else {
		s.logger.Printf("job %s: submitted as %s", node.Name, handle)
		node.Handle = handle
		node.Status = Submitted
	}

	if err := st.Save(checkpointPath); err != nil {
		return fmt.Errorf("cannot write checkpoint: %w", err)
	}
	return nil
}

// pollNode polls one in-flight node and applies the outcome.
func (s *Supervisor) pollNode(ctx context.Context, st *RunState, node *JobNode, checkpointPath string) error {
	var outcome Outcome
	err := s.withRetry(ctx, node, func() error {
		o, err := s.launcher.Poll(ctx, node.Handle)
		if err != nil {
			return err
		}
		outcome = o
		return nil
	})

	before := node.Status
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Printf("job %s: polling failed: %s", node.Name, err)
		node.Status = Failed
	} else {
		switch outcome {
		case OutcomeRunning:
			node.Status = Running
		case OutcomeSucceeded:
			node.Status = Succeeded
		case OutcomeFailed:
			node.Status = Failed
		}
	}

	if node.Status == before {
		return nil
	}
	s.logger.Printf("job %s: %s -> %s", node.Name, before, node.Status)

	if err := st.Save(checkpointPath); err != nil {
		return fmt.Errorf("cannot write checkpoint: %w", err)
	}
	return nil
}

func (s *Supervisor) withRetry(ctx context.Context, node *JobNode, op func() error) error {
	b := backoff.WithContext(
		backoff.WithMaxRetries(s.newBackoff(), s.maxRetries),
		ctx,
	)
	return backoff.Retry(
		func() error {
			node.Attempts += 1
			return op()
		},
		b,
	)
}
