package get

import (
	"context"
	"fmt"
	"log"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/tesserabio/tessera/pkg/utils"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project    string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace  string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to inspect"`
	EntityType string `flag:"type" metavar:"TYPE" help:"read attributes of entities of this type instead of the workspace"`
	Entity     string `flag:"entity" metavar:"NAME" help:"read attributes of this entity only (needs --type)"`
}

const ARG_ATTRIBUTE = "ATTRIBUTE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show attributes of the workspace or an entity.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_ATTRIBUTE, Required: false, Repeatable: true,
				Help: "show only these attributes. Defaults to all of them.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Show attributes as "name<TAB>value" lines. Without --type, workspace
attributes are shown. With --type and --entity, that entity's attributes
are shown. List-shaped values are flattened to their items.
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

	wanted := map[string]bool{}
	for _, name := range cl.Args()[ARG_ATTRIBUTE] {
		wanted[name] = true
	}

	var attrs map[string]any
	flags := cl.Flags()
	switch {
	case flags.EntityType != "" && flags.Entity != "":
		ent, err := client.GetEntity(ctx, project, workspace, flags.EntityType, flags.Entity)
		if err != nil {
			return err
		}
		attrs = ent.Attributes
	case flags.EntityType != "":
		return fmt.Errorf("%w: --type needs --entity; to dump a whole type, use `tess entity export`", flarc.ErrUsage)
	case flags.Entity != "":
		return fmt.Errorf("%w: --entity needs --type", flarc.ErrUsage)
	default:
		entry, err := client.GetWorkspace(ctx, project, workspace, "workspace.attributes")
		if err != nil {
			return err
		}
		attrs = entry.Workspace.Attributes
	}

	for _, name := range utils.SortedKeysOf(attrs) {
		if 0 < len(wanted) && !wanted[name] {
			continue
		}
		fmt.Fprintf(cl.Stdout(), "%s\t%s\n", name, attributes.Flatten(attrs[name]))
	}
	return nil
}
