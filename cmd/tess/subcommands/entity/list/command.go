package list

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to inspect"`
	Filter    string `flag:"filter" metavar:"TERMS" help:"show only entities matching these filter terms"`
}

const ARG_ENTITY_TYPE = "ENTITY_TYPE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List entities of a type, one name per line.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_ENTITY_TYPE, Required: false,
				Help: "entity type to list. Defaults to the tessenv entity type.",
			},
		},
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

	etype := e.EntityTypeOr()
	if ts := cl.Args()[ARG_ENTITY_TYPE]; 0 < len(ts) {
		etype = ts[0]
	}

	query := trst.EntityQuery{
		Page:        1,
		PageSize:    e.PageSizeOr(),
		FilterTerms: cl.Flags().Filter,
	}
	for {
		page, err := client.QueryEntities(ctx, project, workspace, etype, query)
		if err != nil {
			return err
		}
		for _, ent := range page.Results {
			fmt.Fprintln(cl.Stdout(), ent.Name)
		}
		if page.ResultMetadata.FilteredPageCount <= query.Page {
			return nil
		}
		query.Page += 1
	}
}
