package start

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
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
	Checkpoint string        `flag:"checkpoint" metavar:"FILE" help:"checkpoint file to write progress to. Defaults to WORKFLOW with a .checkpoint.json suffix."`
	Interval   time.Duration `flag:"interval" help:"pause between polling ticks."`
	MaxRetries uint64        `flag:"max-retries" metavar:"N" help:"how often a failing submit or poll is retried before the job is marked failed."`
	GraphDot   string        `flag:"graph-dot" metavar:"FILE" help:"write the parsed job graph as graphviz dot to FILE and exit without submitting."`
}

const ARG_WORKFLOW = "WORKFLOW"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Run a workflow of dependent submissions to completion.",
		Flag{
			Interval:   supervisor.DefaultInterval,
			MaxRetries: supervisor.DefaultMaxRetries,
		},
		flarc.Args{
			{
				Name: ARG_WORKFLOW, Required: true,
				Help: "YAML workflow file describing the jobs. - reads from stdin.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`Submit the jobs of a workflow in dependency order and poll them until
every job is settled. A job is submitted only once all of the jobs it
comes after have succeeded; a failed job permanently blocks its
dependents, but unrelated jobs keep running.

Progress is checkpointed to a file after every state change, so an
interrupted run can be picked up again with "tess supervise resume".

Workflow file
-------------

	jobs:
	  - name: align
	    payload: { config: broadgp/align, entity: batch-7, entityType: sample_set }
	  - name: call-variants
	    after: [align]
	    payload: { config: broadgp/call, entity: batch-7, entityType: sample_set }

Payload keys: config ("NAMESPACE/NAME" or "NAME"), entity, entityType,
expression, useCallCache. Keys left out fall back to tessenv defaults;
config falls back to the job name.

Example
-------

	{{ .Command }} --workspace wgs-prod ./workflow.yaml
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

	workflow := cl.Args()[ARG_WORKFLOW][0]
	var source io.Reader = cl.Stdin()
	if workflow != "-" {
		f, err := os.Open(workflow)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", workflow, err)
		}
		defer f.Close()
		source = f
	}

	state, err := supervisor.ParseGraph(source)
	if err != nil {
		return tsserr.NewCuiError(
			fmt.Sprintf("%s is not a valid workflow", workflow),
			tsserr.WithCause(err),
		)
	}

	if dotfile := flags.GraphDot; dotfile != "" {
		f, err := os.Create(dotfile)
		if err != nil {
			return fmt.Errorf("cannot write %s: %w", dotfile, err)
		}
		defer f.Close()
		return state.GenerateDot(f)
	}

	checkpoint := flags.Checkpoint
	if checkpoint == "" {
		checkpoint = defaultCheckpoint(workflow)
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

	logger.Printf("run %s: checkpointing to %s", state.RunId, checkpoint)
	report, err := sup.Run(ctx, state, checkpoint)
	report.Show(cl.Stdout())
	if err != nil {
		if errors.Is(err, supervisor.ErrInterrupted) {
			return tsserr.NewCuiError(
				fmt.Sprintf("interrupted. Resume with: tess supervise resume %s", checkpoint),
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

func defaultCheckpoint(workflow string) string {
	if workflow == "-" {
		return "workflow.checkpoint.json"
	}
	base := strings.TrimSuffix(workflow, filepath.Ext(workflow))
	return base + ".checkpoint.json"
}
