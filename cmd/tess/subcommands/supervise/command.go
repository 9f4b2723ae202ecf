package supervise

import (
	sv_resume "github.com/tesserabio/tessera/cmd/tess/subcommands/supervise/resume"
	sv_start "github.com/tesserabio/tessera/cmd/tess/subcommands/supervise/start"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	start, err := sv_start.New()
	if err != nil {
		return nil, err
	}
	resume, err := sv_resume.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Run workflows of dependent submissions.",
		struct{}{},
		flarc.WithSubcommand("start", start),
		flarc.WithSubcommand("resume", resume),
	)
}
