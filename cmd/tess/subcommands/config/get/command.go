package get

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
	Namespace string `flag:"namespace" metavar:"NAMESPACE" help:"method namespace. Defaults to the tessenv method namespace."`
}

const ARG_CONFIG = "CONFIG"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show one method configuration, as JSON.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_CONFIG, Required: true,
				Help: "name of the method configuration.",
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
	namespace := cl.Flags().Namespace
	if namespace == "" {
		namespace = e.MethodNamespace
	}

	config, err := client.GetMethodConfig(ctx, project, workspace, namespace, cl.Args()[ARG_CONFIG][0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(config)
}
