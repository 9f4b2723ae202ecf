package entity

import (
	entity_copy "github.com/tesserabio/tessera/cmd/tess/subcommands/entity/copy"
	entity_export "github.com/tesserabio/tessera/cmd/tess/subcommands/entity/export"
	entity_import "github.com/tesserabio/tessera/cmd/tess/subcommands/entity/import"
	entity_list "github.com/tesserabio/tessera/cmd/tess/subcommands/entity/list"
	entity_rm "github.com/tesserabio/tessera/cmd/tess/subcommands/entity/rm"
	entity_types "github.com/tesserabio/tessera/cmd/tess/subcommands/entity/types"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	types, err := entity_types.New()
	if err != nil {
		return nil, err
	}
	list, err := entity_list.New()
	if err != nil {
		return nil, err
	}
	export, err := entity_export.New()
	if err != nil {
		return nil, err
	}
	imp, err := entity_import.New()
	if err != nil {
		return nil, err
	}
	rm, err := entity_rm.New()
	if err != nil {
		return nil, err
	}
	cp, err := entity_copy.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage the entities of a workspace data model.",
		struct{}{},
		flarc.WithSubcommand("types", types),
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("export", export),
		flarc.WithSubcommand("import", imp),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("copy", cp),
	)
}
