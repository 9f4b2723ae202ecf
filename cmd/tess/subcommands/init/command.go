package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	prof "github.com/tesserabio/tessera/cmd/tess/config/profiles"
	"github.com/tesserabio/tessera/cmd/tess/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_TESS_PROFILE_FILE = "TESS_PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Initialize this directory as a tessera-powered project.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_TESS_PROFILE_FILE, Required: true,
				Help: "filepath to tessprofile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task),
		flarc.WithDescription(`
Register a new tessprofile into your profile store.

"tessprofile" is a file which contains information about a Tessera deployment.
"{{ .Command }}" registers the given tessprofile into your profile store.

The name of the profile is given by "--profile" ( default: current filepath ).
`),
	)
}

func Task(
	ctx context.Context,
	logger *log.Logger,
	cf common.CommonFlags,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	profFile := cl.Args()[ARG_TESS_PROFILE_FILE][0]

	profStore, err := prof.LoadProfileStore(cf.ProfileStore)
	if errors.Is(err, prof.ErrProfileStoreNotFound) {
		// ok.
		profStore = prof.ProfileStore{}
	} else if err != nil {
		return fmt.Errorf("failed to load profile store (%s): %w", cf.ProfileStore, err)
	}

	profName := cf.Profile
	newProf := new(prof.Profile)
	{
		content, err := os.ReadFile(profFile)
		if err != nil {
			return fmt.Errorf("failed to read profile file (%s): %w", profFile, err)
		}
		if err := yaml.Unmarshal(content, newProf); err != nil {
			return fmt.Errorf("failed to parse profile file (%s): %w", profFile, err)
		}
	}
	if err := newProf.Verify(); err != nil {
		return fmt.Errorf("%s: %w", profFile, err)
	}

	profStore[profName] = newProf
	if err := profStore.Save(cf.ProfileStore); err != nil {
		return fmt.Errorf("failed to save profile store (%s): %w", cf.ProfileStore, err)
	}
	logger.Printf("profile %s is saved to %s", profName, cf.ProfileStore)

	f, err := os.OpenFile(".tessprofile", os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("failed to open .tessprofile: %w", err)
	}
	defer f.Close()
	f.Write([]byte(profName))

	return nil
}
