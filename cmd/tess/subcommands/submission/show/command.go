package show

import (
	"context"
	"encoding/json"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to inspect"`
}

const ARG_SUBMISSION = "SUBMISSION"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show a submission and its workflow statuses, as JSON.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_SUBMISSION, Required: true,
				Help: "id of the submission.",
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

	detail, err := client.GetSubmission(ctx, project, workspace, cl.Args()[ARG_SUBMISSION][0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(detail)
}
