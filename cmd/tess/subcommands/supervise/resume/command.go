package resume

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	tsserr "github.com/tesserabio/tessera/cmd/tess/errors"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/supervise/launcher"
	"github.com/tesserabio/tessera/cmd/tess/supervisor"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string        `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string        `flag:"workspace" metavar:"WORKSPACE" help:"workspace to submit jobs in"`
	Namespace  string        `flag:"namespace" metavar:"NAMESPACE" help:"method namespace for jobs not naming one. Defaults to the tessenv method namespace."`
	Interval   time.Duration `flag:"interval" help:"pause between polling ticks."`
	MaxRetries uint64        `flag:"max-retries" metavar:"N" help:"how often a failing submit or poll is retried before the job is marked failed."`
}

const ARG_CHECKPOINT = "CHECKPOINT"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Resume an interrupted workflow run from its checkpoint.",
		Flag{
			Interval:   supervisor.DefaultInterval,
			MaxRetries: supervisor.DefaultMaxRetries,
		},
		flarc.Args{
			{
				Name: ARG_CHECKPOINT, Required: true,
				Help: "checkpoint file written by tess supervise start.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`Pick up a workflow run where it left off.

Jobs already submitted are polled, not resubmitted; jobs already settled
stay as they are. The checkpoint file keeps being updated in place.
`),
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
	flags := cl.Flags()

	checkpoint := cl.Args()[ARG_CHECKPOINT][0]
	state, err := supervisor.LoadCheckpoint(checkpoint)
	if err != nil {
		return tsserr.NewCuiError(
			fmt.Sprintf("%s is not a usable checkpoint", checkpoint),
			tsserr.WithCause(err),
		)
	}

	namespace := flags.Namespace
	if namespace == "" {
		namespace = e.MethodNamespace
	}
	l := launcher.New(client, project, workspace, namespace, e.EntityTypeOr())

	sup := supervisor.New(
		l,
		supervisor.WithInterval(flags.Interval),
		supervisor.WithMaxRetries(flags.MaxRetries),
		supervisor.WithLogger(logger),
	)

	logger.Printf("resuming run %s from %s", state.RunId, checkpoint)
	report, err := sup.Run(ctx, state, checkpoint)
	report.Show(cl.Stdout())
	if err != nil {
		if errors.Is(err, supervisor.ErrInterrupted) {
			return tsserr.NewCuiError(
				fmt.Sprintf("interrupted. Resume again with: tess supervise resume %s", checkpoint),
				tsserr.WithCause(err),
			)
		}
		return err
	}
	if !report.OK() {
		return tsserr.NewCuiError("some jobs failed")
	}
	return nil
}
