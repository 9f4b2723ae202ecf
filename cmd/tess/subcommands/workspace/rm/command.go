package rm

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Yes     bool   `flag:"yes" alias:"y" help:"do not ask for confirmation"`
}

const ARG_WORKSPACE = "WORKSPACE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Delete a workspace and its bucket.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_WORKSPACE, Required: true,
				Help: "name of the workspace to delete.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Delete a workspace, including every file in its bucket. This cannot be undone.
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
	name := cl.Args()[ARG_WORKSPACE][0]
	project, name, err := common.Workspace(e, cl.Flags().Project, name)
	if err != nil {
		return err
	}

	if !cl.Flags().Yes {
		fmt.Fprintf(
			cl.Stdout(),
			"delete workspace %s/%s and everything in its bucket? [y/N]: ",
			project, name,
		)
		answer, err := bufio.NewReader(cl.Stdin()).ReadString('\n')
		if err != nil {
			return err
		}
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			logger.Println("cancelled.")
			return nil
		}
	}

	if err := client.DeleteWorkspace(ctx, project, name); err != nil {
		return err
	}
	logger.Printf("workspace %s/%s is deleted", project, name)
	return nil
}
