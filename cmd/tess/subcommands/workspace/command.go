package workspace

import (
	ws_acl "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/acl"
	ws_clone "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/clone"
	ws_list "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/list"
	ws_lock "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/lock"
	ws_new "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/new"
	ws_rm "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/rm"
	ws_show "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/show"
	ws_unlock "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/unlock"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	list, err := ws_list.New()
	if err != nil {
		return nil, err
	}
	show, err := ws_show.New()
	if err != nil {
		return nil, err
	}
	new_, err := ws_new.New()
	if err != nil {
		return nil, err
	}
	rm, err := ws_rm.New()
	if err != nil {
		return nil, err
	}
	clone, err := ws_clone.New()
	if err != nil {
		return nil, err
	}
	lock, err := ws_lock.New()
	if err != nil {
		return nil, err
	}
	unlock, err := ws_unlock.New()
	if err != nil {
		return nil, err
	}
	acl, err := ws_acl.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manage Tessera workspaces.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("new", new_),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("clone", clone),
		flarc.WithSubcommand("lock", lock),
		flarc.WithSubcommand("unlock", unlock),
		flarc.WithSubcommand("acl", acl),
	)
}
