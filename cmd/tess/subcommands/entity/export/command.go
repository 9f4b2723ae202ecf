package export

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cheggaaa/pb/v3"
	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to export from"`
	Progress  bool   `flag:"progress" help:"show a progress bar on stderr"`
}

const ARG_ENTITY_TYPE = "ENTITY_TYPE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Export entities of a type as a loadfile (TSV on stdout).",
		Flag{},
		flarc.Args{
			{
				Name: ARG_ENTITY_TYPE, Required: false,
				Help: "entity type to export. Defaults to the tessenv entity type.",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Write every entity of a type as a loadfile: a TSV whose header is
"entity:<type>_id" followed by the attribute names, one entity per row.
The output re-imports with "tess entity import".

List-shaped attribute values are flattened to their items.
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

	etype := e.EntityTypeOr()
	if ts := cl.Args()[ARG_ENTITY_TYPE]; 0 < len(ts) {
		etype = ts[0]
	}

	types, err := client.ListEntityTypes(ctx, project, workspace)
	if err != nil {
		return err
	}
	meta, ok := types[etype]
	if !ok {
		return fmt.Errorf("workspace %s/%s has no %s entities", project, workspace, etype)
	}

	header := append([]string{fmt.Sprintf("entity:%s", meta.IdName)}, meta.AttributeNames...)
	fmt.Fprintln(cl.Stdout(), strings.Join(header, "\t"))

	var bar *pb.ProgressBar
	if cl.Flags().Progress {
		bar = pb.New(meta.Count).SetWriter(cl.Stderr()).Start()
		defer bar.Finish()
	}

	query := trst.EntityQuery{Page: 1, PageSize: e.PageSizeOr()}
	for {
		page, err := client.QueryEntities(ctx, project, workspace, etype, query)
		if err != nil {
			return err
		}
		for _, ent := range page.Results {
			row := make([]string, 0, len(meta.AttributeNames)+1)
			row = append(row, ent.Name)
			for _, attr := range meta.AttributeNames {
				value, ok := ent.Attributes[attr]
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, attributes.Flatten(value))
			}
			fmt.Fprintln(cl.Stdout(), strings.Join(row, "\t"))
			if bar != nil {
				bar.Increment()
			}
		}
		if page.ResultMetadata.FilteredPageCount <= query.Page {
			return nil
		}
		query.Page += 1
	}
}
