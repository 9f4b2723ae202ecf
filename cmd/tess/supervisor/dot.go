package supervisor

import (
	"fmt"
	"io"
)

func statusColor(s Status) string {
	switch s {
	case Succeeded:
		return "#00d400"
	case Failed:
		return "#d40000"
	case Submitted, Running:
		return "#e7b400"
	default:
		return "#aaaaaa"
	}
}

// GenerateDot renders the run as a graphviz digraph, nodes colored by
// status, one edge per dependency.
func (s *RunState) GenerateDot(w io.Writer) error {
	_, err := w.Write([]byte(`digraph G {
	node [shape=record fontsize=10]
	edge [fontsize=10]

`))
	if err != nil {
		return err
	}

	for i, n := range s.Nodes {
		_, err := fmt.Fprintf(
			w,
			"	\"n%d\" [label=\"%s|%s\" color=\"%s\"];\n",
			i, n.Name, n.Status, statusColor(n.Status),
		)
		if err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}

	index := map[string]int{}
	for i, n := range s.Nodes {
		index[n.Name] = i
	}
	for i, n := range s.Nodes {
		for _, dep := range n.After {
			from, ok := index[dep]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "	\"n%d\" -> \"n%d\";\n", from, i); err != nil {
				return err
			}
		}
	}

	_, err = w.Write([]byte("\n}"))
	return err
}
