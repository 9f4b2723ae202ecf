package common_test

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tesserabio/tessera/cmd/tess/config/profiles"
	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	trst "github.com/tesserabio/tessera/cmd/tess/rest"
	common "github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/internal/commandline"
	"github.com/youta-t/flarc"
)

func TestNewTaskWithProfile(t *testing.T) {
	newCommandline := func(cf common.CommonFlags) (flarc.Commandline[struct{}], []any) {
		cl := &commandline.MockCommandline[struct{}]{
			Fullname_: "tess test",
			Stdin_:    strings.NewReader(""),
			Stdout_:   new(strings.Builder),
			Stderr_:   new(strings.Builder),
			Flags_:    struct{}{},
			Args_:     map[string][]string{},
		}
		return cl, []any{cf}
	}

	writeStore := func(t *testing.T, content string) common.CommonFlags {
		home := t.TempDir()
		store := filepath.Join(home, "profile")
		if err := os.WriteFile(store, []byte(content), os.FileMode(0600)); err != nil {
			t.Fatal(err)
		}
		return common.CommonFlags{
			Profile:      "test",
			ProfileStore: store,
			Env:          filepath.Join(home, "tessenv"),
		}
	}

	t.Run("it passes the profile selected by the common flags to the task", func(t *testing.T) {
		cf := writeStore(t, `test:
    apiRoot: https://api.tessera.example/api
`)

		var got *profiles.Profile
		testee := common.NewTaskWithProfile(func(
			_ context.Context,
			_ *log.Logger,
			prof *profiles.Profile,
			_ tenv.TessEnv,
			_ trst.TessClient,
			_ flarc.Commandline[struct{}],
			_ []any,
		) error {
			got = prof
			return nil
		})

		cl, params := newCommandline(cf)
		if err := testee(context.Background(), cl, params); err != nil {
			t.Fatal(err)
		}

		if got == nil {
			t.Fatal("task did not receive a profile")
		}
		if got.ApiRoot != "https://api.tessera.example/api" {
			t.Errorf("wrong profile: apiRoot = %s", got.ApiRoot)
		}
	})

	t.Run("it errors when the named profile is not in the store", func(t *testing.T) {
		cf := writeStore(t, `other:
    apiRoot: https://api.tessera.example/api
`)

		called := false
		testee := common.NewTaskWithProfile(func(
			_ context.Context,
			_ *log.Logger,
			_ *profiles.Profile,
			_ tenv.TessEnv,
			_ trst.TessClient,
			_ flarc.Commandline[struct{}],
			_ []any,
		) error {
			called = true
			return nil
		})

		cl, params := newCommandline(cf)
		if err := testee(context.Background(), cl, params); err == nil {
			t.Error("no error for a missing profile")
		}
		if called {
			t.Error("task should not be called without a profile")
		}
	})
}
