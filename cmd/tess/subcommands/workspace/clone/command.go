package clone

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project string `flag:"project" metavar:"PROJECT" help:"billing project of the source workspace"`
}

const (
	ARG_SOURCE      = "SOURCE"
	ARG_DESTINATION = "DESTINATION"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Clone a workspace into a new one.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_SOURCE, Required: true,
				Help: "workspace to clone.",
			},
			{
				Name: ARG_DESTINATION, Required: true,
				Help: "name for the clone. Prefix with \"PROJECT/\" to clone into another billing project.",
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
	args := cl.Args()
	project, source, err := common.Workspace(e, cl.Flags().Project, args[ARG_SOURCE][0])
	if err != nil {
		return err
	}

	destProject, dest := project, args[ARG_DESTINATION][0]
	if p, n, ok := strings.Cut(dest, "/"); ok {
		destProject, dest = p, n
	}

	cloned, err := client.CloneWorkspace(ctx, project, source, workspaces.CloneRequest{
		Namespace:  destProject,
		Name:       dest,
		Attributes: map[string]any{},
	})
	if err != nil {
		return err
	}
	logger.Printf("workspace %s/%s is cloned to %s", project, source, cloned.Id())

	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(cloned)
}
