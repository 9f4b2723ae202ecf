package set

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to modify"`
	EntityType string `flag:"type" metavar:"TYPE" help:"set the attribute on an entity of this type instead of the workspace"`
	Entity     string `flag:"entity" metavar:"NAME" help:"set the attribute on this entity (needs --type)"`
}

const (
	ARG_ATTRIBUTE = "ATTRIBUTE"
	ARG_VALUE     = "VALUE"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Set an attribute on the workspace or an entity.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_ATTRIBUTE, Required: true,
				Help: "name of the attribute to set.",
			},
			{
				Name: ARG_VALUE, Required: true,
				Help: "value to set.",
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

	name := cl.Args()[ARG_ATTRIBUTE][0]
	value := cl.Args()[ARG_VALUE][0]
	updates := []attributes.Update{attributes.Set(name, value)}

	flags := cl.Flags()
	switch {
	case flags.EntityType != "" && flags.Entity != "":
		if _, err := client.UpdateEntity(
			ctx, project, workspace, flags.EntityType, flags.Entity, updates,
		); err != nil {
			return err
		}
		logger.Printf("%s:%s %s=%s", flags.EntityType, flags.Entity, name, value)
		return nil
	case flags.EntityType != "":
		return fmt.Errorf("%w: --type needs --entity", flarc.ErrUsage)
	case flags.Entity != "":
		return fmt.Errorf("%w: --entity needs --type", flarc.ErrUsage)
	}

	if err := client.UpdateWorkspaceAttributes(ctx, project, workspace, updates); err != nil {
		return err
	}
	logger.Printf("%s/%s %s=%s", project, workspace, name, value)
	return nil
}
