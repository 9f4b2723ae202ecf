package rm

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/entities"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to delete from"`
	EntityType string `flag:"type" metavar:"TYPE" help:"entity type of the named entities"`
	Yes        bool   `flag:"yes" alias:"y" help:"do not ask for confirmation"`
}

const ARG_ENTITY = "ENTITY"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete entities from the workspace data model.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_ENTITY, Required: true, Repeatable: true,
				Help: "names of the entities to delete.",
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

	etype := cl.Flags().EntityType
	if etype == "" {
		etype = e.EntityTypeOr()
	}
	names := cl.Args()[ARG_ENTITY]

	if !cl.Flags().Yes {
		fmt.Fprintf(
			cl.Stdout(),
			"delete %d %s entities from %s/%s? [y/N]: ",
			len(names), etype, project, workspace,
		)
		answer, err := bufio.NewReader(cl.Stdin()).ReadString('\n')
		if err != nil {
			return err
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			logger.Println("cancelled.")
			return nil
		}
	}

	refs := utils.Map(names, func(name string) entities.Reference {
		return entities.Reference{EntityType: etype, EntityName: name}
	})
	if err := client.DeleteEntities(ctx, project, workspace, refs); err != nil {
		return err
	}
	logger.Printf("%d %s entities are deleted from %s/%s", len(refs), etype, project, workspace)
	return nil
}
