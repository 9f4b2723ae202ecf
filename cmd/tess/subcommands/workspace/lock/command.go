package lock

import (
	"context"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
}

const ARG_WORKSPACE = "WORKSPACE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Lock a workspace against modification.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_WORKSPACE, Required: false,
				Help: "workspace to lock. Defaults to the tessenv workspace.",
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
	name := ""
	if ws := cl.Args()[ARG_WORKSPACE]; 0 < len(ws) {
		name = ws[0]
	}
	project, name, err := common.Workspace(e, cl.Flags().Project, name)
	if err != nil {
		return err
	}

	if err := client.LockWorkspace(ctx, project, name); err != nil {
		return err
	}
	logger.Printf("workspace %s/%s is locked", project, name)
	return nil
}
