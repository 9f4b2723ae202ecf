package submission

import (
	sub_abort "github.com/tesserabio/tessera/cmd/tess/subcommands/submission/abort"
	sub_list "github.com/tesserabio/tessera/cmd/tess/subcommands/submission/list"
	sub_new "github.com/tesserabio/tessera/cmd/tess/subcommands/submission/new"
	sub_show "github.com/tesserabio/tessera/cmd/tess/subcommands/submission/show"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	new_, err := sub_new.New()
	if err != nil {
		return nil, err
	}
	list, err := sub_list.New()
	if err != nil {
		return nil, err
	}
	show, err := sub_show.New()
	if err != nil {
		return nil, err
	}
	abort, err := sub_abort.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage workflow submissions.",
		struct{}{},
		flarc.WithSubcommand("new", new_),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("abort", abort),
	)
}
