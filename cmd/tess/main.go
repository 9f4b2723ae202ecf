package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/tesserabio/tessera/cmd/tess/subcommands/attr"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/config"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/entity"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/extensions"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/health"
	subinit "github.com/tesserabio/tessera/cmd/tess/subcommands/init"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/logger"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/mop"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/submission"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/supervise"
	subver "github.com/tesserabio/tessera/cmd/tess/subcommands/version"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/workspace"
	"github.com/tesserabio/tessera/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	workspace := try.To(workspace.New()).OrFatal(logger)
	entity := try.To(entity.New()).OrFatal(logger)
	attr := try.To(attr.New()).OrFatal(logger)
	config := try.To(config.New()).OrFatal(logger)
	submission := try.To(submission.New()).OrFatal(logger)
	supervise := try.To(supervise.New()).OrFatal(logger)
	mop := try.To(mop.New()).OrFatal(logger)
	health := try.To(health.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	options := groupOptions(
		flarc.WithSubcommand("init", init),
		flarc.WithSubcommand("workspace", workspace),
		flarc.WithSubcommand("entity", entity),
		flarc.WithSubcommand("attr", attr),
		flarc.WithSubcommand("config", config),
		flarc.WithSubcommand("submission", submission),
		flarc.WithSubcommand("supervise", supervise),
		flarc.WithSubcommand("mop", mop),
		flarc.WithSubcommand("health", health),
		flarc.WithSubcommand("version", version),
	)
	for _, ext := range extensions.FindSubcommand(name + "-") {
		extcmd := try.To(extensions.New(ext)).OrFatal(logger)
		options = append(options, flarc.WithSubcommand(ext.Name, extcmd))
	}

	tess := try.To(
		flarc.NewCommandGroup(
			"Tessera commandline interface",
			cf,
			options...,
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, tess, flarc.WithHelp(true)))
}

func groupOptions[T any](options ...T) []T {
	return options
}
