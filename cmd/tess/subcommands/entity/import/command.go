package imp

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"
	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	"github.com/tesserabio/tessera/cmd/tess/loadfile"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Project   string `flag:"project" metavar:"PROJECT" help:"billing project of the workspace"`
	Workspace string `flag:"workspace" metavar:"WORKSPACE" help:"workspace to import into"`
	ChunkSize int    `flag:"chunk-size" metavar:"N" help:"rows per upload request"`
	Progress  bool   `flag:"progress" help:"show a progress bar on stderr"`
}

const ARG_LOADFILE = "LOADFILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Import entities from a loadfile (TSV).",
		Flag{
			ChunkSize: loadfile.DefaultChunkSize,
		},
		flarc.Args{
			{
				Name: ARG_LOADFILE, Required: false,
				Help: "loadfile to import. Reads stdin when omitted or \"-\".",
			},
		},
		common.NewTask(Task),
		flarc.WithDescription(`
Import a loadfile into the workspace data model.

The whole file is validated before anything is sent: the header must
start with "entity:", "update:" or "membership:", its first column must
be "<entity type>_id", and every row must have as many columns as the
header. Rows are then uploaded in chunks.
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

	var source io.Reader = cl.Stdin()
	if args := cl.Args()[ARG_LOADFILE]; 0 < len(args) && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		source = f
	}

	doc, err := loadfile.Read(source)
	if err != nil {
		return err
	}

	chunks := doc.Chunks(cl.Flags().ChunkSize)
	if len(chunks) == 0 {
		logger.Println("nothing to import.")
		return nil
	}

	var bar *pb.ProgressBar
	if cl.Flags().Progress {
		bar = pb.New(len(chunks)).SetWriter(cl.Stderr()).Start()
		defer bar.Finish()
	}

	for _, chunk := range chunks {
		if err := client.UploadEntities(ctx, project, workspace, chunk); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	logger.Printf(
		"%d %s entities are imported into %s/%s",
		len(doc.Rows), doc.Header.EntityType, project, workspace,
	)
	return nil
}
