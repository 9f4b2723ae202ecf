package abort

import (
	"context"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace the submission runs in"`
}

const ARG_SUBMISSION = "SUBMISSION"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Abort a running submission.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_SUBMISSION, Required: true, Repeatable: true,
				Help: "ids of the submissions to abort.",
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

	for _, id := range cl.Args()[ARG_SUBMISSION] {
		if err := client.AbortSubmission(ctx, project, workspace, id); err != nil {
			return err
		}
		logger.Printf("aborting submission %s", id)
	}
	return nil
}
