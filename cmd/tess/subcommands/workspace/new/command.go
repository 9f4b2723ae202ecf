package new

import (
	"context"
	"encoding/json"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
	kflg "github.com/tesserabio/tessera/pkg/commandline/flag"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string         `flag:"project" metavar:"PROJECT" help:"billing project to create the workspace in"`
	AuthDomain *kflg.Argslice `flag:"auth-domain" metavar:"GROUP..." help:"authorization domain group. It can be specified multiple times."`
	Location   string         `flag:"bucket-location" metavar:"LOCATION" help:"region for the workspace bucket"`
}

const ARG_WORKSPACE = "WORKSPACE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a new workspace.",
		Flag{
			AuthDomain: &kflg.Argslice{},
		},
		flarc.Args{
			{
				Name: ARG_WORKSPACE, Required: true,
				Help: "name of the workspace to create.",
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
	name := cl.Args()[ARG_WORKSPACE][0]
	project, name, err := common.Workspace(e, cl.Flags().Project, name)
	if err != nil {
		return err
	}

	req := workspaces.CreateRequest{
		Namespace:      project,
		Name:           name,
		Attributes:     map[string]any{},
		BucketLocation: cl.Flags().Location,
	}
	if ad := cl.Flags().AuthDomain; ad != nil {
		req.AuthorizationDomain = utils.Map(
			[]string(*ad),
			func(g string) workspaces.GroupRef { return workspaces.GroupRef{MembersGroupName: g} },
		)
	}

	created, err := client.CreateWorkspace(ctx, req)
	if err != nil {
		return err
	}
	logger.Printf("workspace %s is created", created.Id())

	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(created)
}
