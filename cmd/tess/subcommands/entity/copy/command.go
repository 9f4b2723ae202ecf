package copy

import (
	"context"
	"fmt"
	"log"
	"strings"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/entities"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the source workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"source workspace"`
	EntityType string `flag:"type" metavar:"TYPE" help:"entity type of the named entities"`
	Link       bool   `flag:"link" help:"link entities that already exist in the destination instead of failing"`
}

const (
	ARG_DESTINATION = "DESTINATION"
	ARG_ENTITY      = "ENTITY"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Copy entities into another workspace.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_DESTINATION, Required: true,
				Help: "destination workspace, as PROJECT/WORKSPACE.",
			},
			{
				Name: ARG_ENTITY, Required: true, Repeatable: true,
				Help: "names of the entities to copy.",
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

	destProject, dest, ok := strings.Cut(cl.Args()[ARG_DESTINATION][0], "/")
	if !ok {
		return fmt.Errorf(
			"%w: destination should be formatted as PROJECT/WORKSPACE", flarc.ErrUsage,
		)
	}

	etype := cl.Flags().EntityType
	if etype == "" {
		etype = e.EntityTypeOr()
	}
	names := cl.Args()[ARG_ENTITY]

	err = client.CopyEntities(ctx, entities.CopyRequest{
		SourceWorkspace:      entities.WorkspaceRef{Namespace: project, Name: workspace},
		DestinationWorkspace: entities.WorkspaceRef{Namespace: destProject, Name: dest},
		EntityType:           etype,
		EntityNames:          names,
		LinkExistingEntities: cl.Flags().Link,
	})
	if err != nil {
		return err
	}
	logger.Printf(
		"%d %s entities are copied from %s/%s to %s/%s",
		len(names), etype, project, workspace, destProject, dest,
	)
	return nil
}
