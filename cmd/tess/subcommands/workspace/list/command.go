package list

import (
	"context"
	"fmt"
	"log"
	"sort"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project string `flag:"project" metavar:"PROJECT" help:"show only workspaces of this billing project"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List workspaces you can read.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task),
		flarc.WithDescription(`
List every workspace you can read, one per line, with your access level.

Example:

	{{ .Command }}
	{{ .Command }} --project my-billing-project
`),
	)
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	e tenv.TessEnv,
	client trst.TessClient,
	cl flarc.Commandline[Flag],
	_ []any,
) error {
	entries, err := client.ListWorkspaces(ctx)
	if err != nil {
		return err
	}

	project := cl.Flags().Project
	if project == "" {
		project = e.Project
	}

	shown := make([]workspaces.Entry, 0, len(entries))
	for _, entry := range entries {
		if project != "" && entry.Workspace.Namespace != project {
			continue
		}
		shown = append(shown, entry)
	}
	sort.Slice(shown, func(i, j int) bool {
		return shown[i].Workspace.Id() < shown[j].Workspace.Id()
	})

	for _, entry := range shown {
		locked := ""
		if entry.Workspace.IsLocked {
			locked = "\t(locked)"
		}
		fmt.Fprintf(
			cl.Stdout(), "%s\t%s%s\n",
			entry.AccessLevel, entry.Workspace.Id(), locked,
		)
	}
	return nil
}
