package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tesserabio/tessera/cmd/tess/config/profiles"
	"github.com/tesserabio/tessera/cmd/tess/env"
	trest "github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/youta-t/flarc"
)

type TessTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TessTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	tessEnv env.TessEnv,
	client trest.TessClient,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithProfile(func(
		ctx context.Context,
		logger *log.Logger,
		_ *profiles.Profile,
		tessEnv env.TessEnv,
		client trest.TessClient,
		cl flarc.Commandline[T],
		params []any,
	) error {
		return task(ctx, logger, tessEnv, client, cl, params)
	})
}

// TaskWithProfile additionally receives the resolved Profile, for commands
// that reach services other than the Tessera API with the same identity.
type TaskWithProfile[T any] func(
	ctx context.Context,
	logger *log.Logger,
	prof *profiles.Profile,
	tessEnv env.TessEnv,
	client trest.TessClient,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithProfile[T any](task TaskWithProfile[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		profile, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf(
					"%w: tessprofile store (%s) is not found. Please try `tess init` first. Ask your admin to get tessprofile",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load tessprofile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := profile[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s)",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		e, err := env.LoadTessEnv(commonFlag.Env)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: failed to load tessenv", err)
			}
		}

		client, err := trest.NewClient(ctx, prof)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create tess client. Your tessprofile (%s in %s) can be broken.\n\nRemove it and try `tess init` again. Ask your admin to get tessprofile",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}
		return task(ctx, logger, prof, *e, client, cl, params)
	})
}
