package list

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to inspect"`
	EntityType string `flag:"type" metavar:"TYPE" help:"list attribute names of this entity type instead of the workspace"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List attribute names, one per line.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task),
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
	project, workspace, err := common.Workspace(e, cl.Flags().Project, cl.Flags().Workspace)
	if err != nil {
		return err
	}

	if etype := cl.Flags().EntityType; etype != "" {
		types, err := client.ListEntityTypes(ctx, project, workspace)
		if err != nil {
			return err
		}
		meta, ok := types[etype]
		if !ok {
			return fmt.Errorf("workspace %s/%s has no %s entities", project, workspace, etype)
		}
		for _, name := range meta.AttributeNames {
			fmt.Fprintln(cl.Stdout(), name)
		}
		return nil
	}

	entry, err := client.GetWorkspace(ctx, project, workspace, "workspace.attributes")
	if err != nil {
		return err
	}
	for _, name := range utils.SortedKeysOf(entry.Workspace.Attributes) {
		fmt.Fprintln(cl.Stdout(), name)
	}
	return nil
}
