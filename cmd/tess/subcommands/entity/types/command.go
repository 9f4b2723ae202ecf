package types

import (
	"context"
	"fmt"
	"log"
	"strings"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to inspect"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List the entity types of a workspace.",
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

	types, err := client.ListEntityTypes(ctx, project, workspace)
	if err != nil {
		return err
	}

	for _, name := range utils.SortedKeysOf(types) {
		meta := types[name]
		fmt.Fprintf(
			cl.Stdout(), "%s\t%d\t%s\n",
			name, meta.Count, strings.Join(meta.AttributeNames, ","),
		)
	}
	return nil
}
