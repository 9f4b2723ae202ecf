package new

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/submissions"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to submit in"`
	Namespace  string `flag:"namespace" metavar:"NAMESPACE" help:"method namespace. Defaults to the tessenv method namespace."`
	EntityType string `flag:"type" metavar:"TYPE" help:"entity type of the root entity. Defaults to the tessenv entity type."`
	Entity     string `flag:"entity" metavar:"NAME" help:"name of the root entity"`
	Expression string `flag:"expression" metavar:"EXPR" help:"expression selecting entities relative to the root entity (for example, this.samples)"`
	NoCache    bool   `flag:"no-cache" help:"run every task even when a cached result exists"`
}

const ARG_CONFIG = "CONFIG"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Submit a method configuration for execution.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_CONFIG, Required: true,
				Help: "name of the method configuration to run.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`Submit a method configuration against a root entity.

Example
-------

Run variant-calling over every sample in a sample set:

	{{ .Command }} --entity batch-7 --expression this.samples variant-calling
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

	namespace := flags.Namespace
	if namespace == "" {
		namespace = e.MethodNamespace
	}
	if flags.Entity == "" {
		return fmt.Errorf("%w: --entity is required", flarc.ErrUsage)
	}
	entityType := flags.EntityType
	if entityType == "" {
		entityType = e.EntityTypeOr()
	}

	created, err := client.CreateSubmission(ctx, project, workspace, submissions.Request{
		MethodConfigurationNamespace: namespace,
		MethodConfigurationName:      cl.Args()[ARG_CONFIG][0],
		EntityType:                   entityType,
		EntityName:                   flags.Entity,
		Expression:                   flags.Expression,
		UseCallCache:                 !flags.NoCache,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cl.Stdout(), created.SubmissionId)
	return nil
}
