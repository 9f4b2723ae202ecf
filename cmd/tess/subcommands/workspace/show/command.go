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
	Project string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Fields  string `flag:"fields" metavar:"FIELD,...." help:"restrict the response to these fields (dotted paths)"`
}

const ARG_WORKSPACE = "WORKSPACE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show one workspace, as JSON.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_WORKSPACE, Required: false,
				Help: "name of the workspace to show. Defaults to the tessenv workspace.",
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

	fields := []string{}
	if f := cl.Flags().Fields; f != "" {
		fields = append(fields, f)
	}

	entry, err := client.GetWorkspace(ctx, project, name, fields...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(entry)
}
