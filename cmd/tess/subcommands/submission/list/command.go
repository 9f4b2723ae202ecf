package list

import (
	"context"
	"fmt"
	"log"
	"sort"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to inspect"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"List the submissions of a workspace, newest first.",
		Flag{},
		flarc.Args{},
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

	subs, err := client.ListSubmissions(ctx, project, workspace)
	if err != nil {
		return err
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[j].SubmissionDate < subs[i].SubmissionDate
	})

	for _, s := range subs {
		entity := ""
		if s.SubmissionEntity != nil {
			entity = s.SubmissionEntity.EntityName
		}
		fmt.Fprintf(
			cl.Stdout(), "%s\t%s\t%s/%s\t%s\t%s\n",
			s.SubmissionId, s.Status,
			s.MethodConfigurationNamespace, s.MethodConfigurationName,
			entity, s.SubmissionDate,
		)
	}
	return nil
}
