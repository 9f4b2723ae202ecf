package config

import (
	cfg_get "github.com/tesserabio/tessera/cmd/tess/subcommands/config/get"
	cfg_list "github.com/tesserabio/tessera/cmd/tess/subcommands/config/list"
	cfg_put "github.com/tesserabio/tessera/cmd/tess/subcommands/config/put"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := cfg_list.New()
	if err != nil {
		return nil, err
	}
	get, err := cfg_get.New()
	if err != nil {
		return nil, err
	}
	put, err := cfg_put.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage method configurations.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("get", get),
		flarc.WithSubcommand("put", put),
	)
}
