package extensions

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

// ExtensionCommand is an executable found on PATH whose name starts with
// the extension prefix ("tess-"). It is exposed as a subcommand.
type ExtensionCommand struct {
	Name string
	Path string
}

func FindSubcommand(prefix string) []ExtensionCommand {
	subcommands := []ExtensionCommand{}

	pathes := strings.Split(os.Getenv("PATH"), string(os.PathListSeparator))
	known := map[string]struct{}{}

	for _, p := range pathes {
		if p == "" {
			p = "."
		}
		files, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasPrefix(f.Name(), prefix) {
				continue
			}
			abspath, err := exec.LookPath(filepath.Join(p, f.Name()))
			if err != nil {
				continue
			}
			name := strings.TrimPrefix(f.Name(), prefix)
			if _, ok := known[name]; ok {
				continue
			}
			for _, executableExt := range []string{".exe", ".bat", ".cmd", ".com"} {
				if strings.HasSuffix(name, executableExt) {
					name = strings.TrimSuffix(name, executableExt)
					break
				}
			}
			subcommands = append(
				subcommands,
				ExtensionCommand{Name: name, Path: abspath},
			)
			known[name] = struct{}{}
		}
	}

	return subcommands
}

const PARAMS = "PARAMS"

func New(ext ExtensionCommand) (flarc.Command, error) {
	return flarc.NewCommand(
		fmt.Sprintf("(= %s)", ext.Path),
		struct{}{},
		flarc.Args{
			{
				Name: PARAMS, Required: false, Repeatable: true,
				Help: "parameters for the extension command",
			},
		},
		common.NewTaskWithCommonFlag(Task(ext)),
	)
}

func Task(ext ExtensionCommand) common.TessTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		args := cl.Args()[PARAMS]
		cmd := exec.Command(ext.Path, args...)
		cmd.Stdin = cl.Stdin()
		cmd.Stdout = cl.Stdout()
		cmd.Stderr = cl.Stderr()
		environ := append(
			os.Environ(),
			"TESS_PROFILE="+cf.Profile,
			"TESS_PROFILE_STORE="+cf.ProfileStore,
		)
		cmd.Env = environ
		err := cmd.Run()
		if err != nil {
			return err
		}
		cmd.Wait()

		return nil
	}
}
