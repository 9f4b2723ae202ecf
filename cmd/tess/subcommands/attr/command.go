package attr

import (
	attr_get "github.com/tesserabio/tessera/cmd/tess/subcommands/attr/get"
	attr_list "github.com/tesserabio/tessera/cmd/tess/subcommands/attr/list"
	attr_rm "github.com/tesserabio/tessera/cmd/tess/subcommands/attr/rm"
	attr_set "github.com/tesserabio/tessera/cmd/tess/subcommands/attr/set"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	get, err := attr_get.New()
	if err != nil {
		return nil, err
	}
	set, err := attr_set.New()
	if err != nil {
		return nil, err
	}
	list, err := attr_list.New()
	if err != nil {
		return nil, err
	}
	rm, err := attr_rm.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage free-form attributes of workspaces and entities.",
		struct{}{},
		flarc.WithSubcommand("get", get),
		flarc.WithSubcommand("set", set),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("rm", rm),
	)
}
