package supervisor

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidGraph is returned (wrapped, with detail) when a job graph
// cannot be supervised: duplicated names, unknown dependencies or cycles.
var ErrInvalidGraph = errors.New("invalid job graph")

// GraphDefinition is the shape of a job graph file.
type GraphDefinition struct {
	Jobs []JobDefinition `yaml:"jobs"`
}

type JobDefinition struct {
	Name    string            `yaml:"name"`
	After   []string          `yaml:"after,omitempty"`
	Payload map[string]string `yaml:"payload,omitempty"`
}

// ParseGraph reads a yaml job graph definition and builds a fresh RunState
// with every node Pending.
//
// The graph is validated before anything else happens; nothing is ever
// submitted from an invalid graph.
func ParseGraph(r io.Reader) (*RunState, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	def := GraphDefinition{}
	if err := yaml.Unmarshal(buf, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}
	return NewRunState(def)
}

// NewRunState builds a fresh RunState from a graph definition.
func NewRunState(def GraphDefinition) (*RunState, error) {
	if len(def.Jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs", ErrInvalidGraph)
	}

	nodes := make([]*JobNode, 0, len(def.Jobs))
	for _, j := range def.Jobs {
		if j.Name == "" {
			return nil, fmt.Errorf("%w: a job without name", ErrInvalidGraph)
		}
		nodes = append(nodes, &JobNode{
			Name:    j.Name,
			After:   j.After,
			Payload: j.Payload,
			Status:  Pending,
		})
	}

	if err := validateGraph(nodes); err != nil {
		return nil, err
	}
	return newRunState(nodes), nil
}

// validateGraph rejects duplicated names, references to unknown nodes
// and dependency cycles.
func validateGraph(nodes []*JobNode) error {
	byName := map[string]*JobNode{}
	for _, n := range nodes {
		if _, ok := byName[n.Name]; ok {
			return fmt.Errorf("%w: job %q is defined twice", ErrInvalidGraph, n.Name)
		}
		byName[n.Name] = n
	}

	for _, n := range nodes {
		for _, dep := range n.After {
			if _, ok := byName[dep]; !ok {
				return fmt.Errorf(
					"%w: job %q depends on unknown job %q",
					ErrInvalidGraph, n.Name, dep,
				)
			}
		}
	}

	const (
		white = 0 // not visited
		grey  = 1 // on the current path
		black = 2 // done
	)
	colors := map[string]int{}

	var visit func(name string) error
	visit = func(name string) error {
		switch colors[name] {
		case grey:
			return fmt.Errorf("%w: dependency cycle through job %q", ErrInvalidGraph, name)
		case black:
			return nil
		}
		colors[name] = grey
		for _, dep := range byName[name].After {
			if err := visit(dep); err != nil {
				return err
			}
		}
		colors[name] = black
		return nil
	}

	for _, n := range nodes {
		if err := visit(n.Name); err != nil {
			return err
		}
	}
	return nil
}
