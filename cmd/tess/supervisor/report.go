package supervisor

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// NodeReport is the user-facing summary of one node after a run.
type NodeReport struct {
	Name     string
	Status   Status
	Blocked  bool
	Handle   string
	Attempts int
}

// Report is the user-facing summary of a whole run.
type Report struct {
	RunId string
	Nodes []NodeReport
}

func NewReport(state *RunState) Report {
	nodes := make([]NodeReport, 0, len(state.Nodes))
	for _, n := range state.Nodes {
		nodes = append(nodes, NodeReport{
			Name:     n.Name,
			Status:   n.Status,
			Blocked:  state.Blocked(n.Name),
			Handle:   n.Handle,
			Attempts: n.Attempts,
		})
	}
	return Report{RunId: state.RunId, Nodes: nodes}
}

// OK reports whether every node succeeded.
func (r Report) OK() bool {
	for _, n := range r.Nodes {
		if n.Status != Succeeded {
			return false
		}
	}
	return true
}

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Show writes the report as one line per node, plus an overall verdict.
func (r Report) Show(w io.Writer) {
	fmt.Fprintf(w, "run %s:\n", r.RunId)
	for _, n := range r.Nodes {
		status := string(n.Status)
		switch {
		case n.Blocked:
			status = yellow("blocked")
		case n.Status == Succeeded:
			status = green(status)
		case n.Status == Failed:
			status = red(status)
		}

		if n.Handle == "" {
			fmt.Fprintf(w, "    %s\t%s\n", n.Name, status)
		} else {
			fmt.Fprintf(w, "    %s\t%s\t(submission %s)\n", n.Name, status, n.Handle)
		}
	}

	if r.OK() {
		fmt.Fprintf(w, "overall: %s\n", green("success"))
	} else {
		fmt.Fprintf(w, "overall: %s\n", red("failure"))
	}
}
