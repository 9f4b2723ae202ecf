package rm

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to modify"`
	EntityType string `flag:"type" metavar:"TYPE" help:"remove the attributes from an entity of this type instead of the workspace"`
	Entity     string `flag:"entity" metavar:"NAME" help:"remove the attributes from this entity (needs --type)"`
}

const ARG_ATTRIBUTE = "ATTRIBUTE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Remove attributes from the workspace or an entity.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_ATTRIBUTE, Required: true, Repeatable: true,
				Help: "names of the attributes to remove.",
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

	updates := utils.Map(cl.Args()[ARG_ATTRIBUTE], attributes.Remove)

	flags := cl.Flags()
	switch {
	case flags.EntityType != "" && flags.Entity != "":
		if _, err := client.UpdateEntity(
			ctx, project, workspace, flags.EntityType, flags.Entity, updates,
		); err != nil {
			return err
		}
		logger.Printf("%d attributes are removed from %s:%s", len(updates), flags.EntityType, flags.Entity)
		return nil
	case flags.EntityType != "":
		return fmt.Errorf("%w: --type needs --entity", flarc.ErrUsage)
	case flags.Entity != "":
		return fmt.Errorf("%w: --entity needs --type", flarc.ErrUsage)
	}

	if err := client.UpdateWorkspaceAttributes(ctx, project, workspace, updates); err != nil {
		return err
	}
	logger.Printf("%d attributes are removed from %s/%s", len(updates), project, workspace)
	return nil
}
