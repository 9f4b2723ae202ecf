// Package supervisor drives a dependency graph of jobs to completion
// against the platform's submission API.
//
// Each job is submitted once every job it depends on has succeeded, then
// polled until it reaches a terminal state. Progress is persisted to a
// checkpoint file after every state change so an interrupted run can be
// resumed without resubmitting work.
package supervisor

import (
	"time"

	"github.com/google/uuid"
	"github.com/tesserabio/tessera/pkg/cmp"
)

// Status of one job node, as persisted in checkpoints.
type Status string

const (
	Pending   Status = "pending"
	Submitted Status = "submitted"
	Running   Status = "running"
	Succeeded Status = "succeeded"
	Failed    Status = "failed"
)

// Terminal reports whether no further transition can happen to this status.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed
}

// JobNode is one unit of work tracked by a supervised run.
type JobNode struct {
	// Name is unique within the run.
	Name string `json:"name"`

	// After names the nodes that must succeed before this one is submitted.
	After []string `json:"after,omitempty"`

	// Payload carries submission parameters. The supervisor itself does not
	// interpret it; the Launcher does.
	Payload map[string]string `json:"payload,omitempty"`

	Status Status `json:"status"`

	// Handle identifies the remote job once submitted.
	Handle string `json:"handle,omitempty"`

	// Attempts counts remote calls made for this node, over submissions
	// and polls.
	Attempts int `json:"attempts,omitempty"`
}

// RunState is the whole state of one supervised run.
type RunState struct {
	RunId     string     `json:"runId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Nodes     []*JobNode `json:"nodes"`
}

func newRunState(nodes []*JobNode) *RunState {
	now := time.Now().Truncate(time.Second)
	return &RunState{
		RunId:     uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Nodes:     nodes,
	}
}

// Node finds a node by name. Returns nil when not found.
func (s *RunState) Node(name string) *JobNode {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Blocked reports whether the named node can never be submitted because
// some dependency, direct or transitive, has failed.
func (s *RunState) Blocked(name string) bool {
	node := s.Node(name)
	if node == nil || node.Status != Pending {
		return false
	}

	visited := map[string]bool{}
	var anyFailed func(names []string) bool
	anyFailed = func(names []string) bool {
		for _, dep := range names {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			d := s.Node(dep)
			if d == nil {
				continue
			}
			if d.Status == Failed || anyFailed(d.After) {
				return true
			}
		}
		return false
	}
	return anyFailed(node.After)
}

// Ready reports whether the named node is pending and every dependency
// has succeeded.
func (s *RunState) Ready(name string) bool {
	node := s.Node(name)
	if node == nil || node.Status != Pending {
		return false
	}
	for _, dep := range node.After {
		if d := s.Node(dep); d == nil || d.Status != Succeeded {
			return false
		}
	}
	return true
}

// Settled reports whether the run can make no more progress: every node
// is terminal or permanently blocked.
func (s *RunState) Settled() bool {
	for _, n := range s.Nodes {
		if n.Status.Terminal() {
			continue
		}
		if s.Blocked(n.Name) {
			continue
		}
		return false
	}
	return true
}

// Succeeded reports whether every node in the run succeeded.
func (s *RunState) Succeeded() bool {
	for _, n := range s.Nodes {
		if n.Status != Succeeded {
			return false
		}
	}
	return true
}

// Equal compares names, dependencies, statuses and handles of two run states.
func (s *RunState) Equal(o *RunState) bool {
	if s.RunId != o.RunId || len(s.Nodes) != len(o.Nodes) {
		return false
	}
	for _, n := range s.Nodes {
		m := o.Node(n.Name)
		if m == nil {
			return false
		}
		if n.Status != m.Status || n.Handle != m.Handle {
			return false
		}
		if !cmp.SliceEq(n.After, m.After) {
			return false
		}
	}
	return true
}
