package list_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	"github.com/tesserabio/tessera/cmd/tess/rest/mock"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/internal/commandline"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/logger"
	ws_list "github.com/tesserabio/tessera/cmd/tess/subcommands/workspace/list"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
)

func TestListCommand(t *testing.T) {
	entries := []workspaces.Entry{
		{
			AccessLevel: workspaces.AccessOwner,
			Workspace:   workspaces.Detail{Namespace: "broad-gp", Name: "wgs-prod"},
		},
		{
			AccessLevel: workspaces.AccessWriter,
			Workspace:   workspaces.Detail{Namespace: "broad-gp", Name: "wgs-dev", IsLocked: true},
		},
		{
			AccessLevel: workspaces.AccessReader,
			Workspace:   workspaces.Detail{Namespace: "other-lab", Name: "rna-seq"},
		},
	}

	type When struct {
		flag ws_list.Flag
		env  tenv.TessEnv
	}
	type Then struct {
		stdout string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			client := mock.New(t)
			client.Impl.ListWorkspaces = func(context.Context) ([]workspaces.Entry, error) {
				return entries, nil
			}

			stdout := new(bytes.Buffer)
			cl := commandline.MockCommandline[ws_list.Flag]{
				Fullname_: "tess workspace list",
				Stdout_:   stdout,
				Stderr_:   new(bytes.Buffer),
				Flags_:    when.flag,
				Args_:     map[string][]string{},
			}

			if err := ws_list.Task(ctx, logger.Null(), when.env, client, cl, nil); err != nil {
				t.Fatal(err)
			}
			if actual := stdout.String(); actual != then.stdout {
				t.Errorf(
					"stdout\n===actual===\n%s\n===expected===\n%s",
					actual, then.stdout,
				)
			}
		}
	}

	t.Run("without a project, every workspace is listed sorted by id", theory(
		When{},
		Then{stdout: "WRITER\tbroad-gp/wgs-dev\t(locked)\n" +
			"OWNER\tbroad-gp/wgs-prod\n" +
			"READER\tother-lab/rna-seq\n"},
	))

	t.Run("the project flag filters by namespace", theory(
		When{flag: ws_list.Flag{Project: "other-lab"}},
		Then{stdout: "READER\tother-lab/rna-seq\n"},
	))

	t.Run("the tessenv project is the fallback filter", theory(
		When{env: tenv.TessEnv{Project: "broad-gp"}},
		Then{stdout: "WRITER\tbroad-gp/wgs-dev\t(locked)\n" +
			"OWNER\tbroad-gp/wgs-prod\n"},
	))
}

func TestListCommand_serverError(t *testing.T) {
	ctx := context.Background()
	expectedError := errors.New("fake error")

	client := mock.New(t)
	client.Impl.ListWorkspaces = func(context.Context) ([]workspaces.Entry, error) {
		return nil, expectedError
	}

	cl := commandline.MockCommandline[ws_list.Flag]{
		Fullname_: "tess workspace list",
		Stdout_:   new(bytes.Buffer),
		Stderr_:   new(bytes.Buffer),
		Args_:     map[string][]string{},
	}

	err := ws_list.Task(ctx, logger.Null(), tenv.TessEnv{}, client, cl, nil)
	if !errors.Is(err, expectedError) {
		t.Errorf("unexpected error: %+v", err)
	}
}
