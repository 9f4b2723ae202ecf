package put

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/configs"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to store the configuration in"`
	Namespace string `flag:"namespace" metavar:"NAMESPACE" help:"method namespace. Defaults to the tessenv method namespace."`
}

const (
	ARG_CONFIG = "CONFIG"
	ARG_FILE   = "FILE"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create or overwrite a method configuration.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_CONFIG, Required: true,
				Help: "name of the method configuration.",
			},
			{
				Name: ARG_FILE, Required: false,
				Help: "JSON file holding the configuration. If omitted or -, read from stdin.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`Store a method configuration read from a JSON file.

The file has the same shape as "{{ .Command }} get" prints.
The namespace and name in the file are overwritten with the ones
given on the command line.

Example
-------

Update a configuration in place:

	tess config get --workspace WORKSPACE variant-calling > vc.json
	(edit vc.json)
	tess config put --workspace WORKSPACE variant-calling vc.json
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
	namespace := cl.Flags().Namespace
	if namespace == "" {
		namespace = e.MethodNamespace
	}
	name := cl.Args()[ARG_CONFIG][0]

	source := cl.Stdin()
	if args := cl.Args()[ARG_FILE]; 0 < len(args) && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()
		source = f
	}

	buf, err := io.ReadAll(source)
	if err != nil {
		return err
	}

	var detail configs.Detail
	if err := json.Unmarshal(buf, &detail); err != nil {
		return fmt.Errorf("malformed method configuration: %w", err)
	}
	detail.Namespace = namespace
	detail.Name = name

	stored, err := client.PutMethodConfig(ctx, project, workspace, namespace, name, detail)
	if err != nil {
		return err
	}

	logger.Printf(
		"stored method configuration %s/%s (version %d)",
		stored.Namespace, stored.Name, stored.MethodConfigVersion,
	)
	return nil
}
