package common

import (
	"fmt"

	tenv "github.com/tesserabio/tessera/cmd/tess/env"
	"github.com/youta-t/flarc"
)

// Workspace resolves the target workspace from flags, falling back to
// tessenv. Both parts are required; missing ones are a usage error.
func Workspace(e tenv.TessEnv, project, workspace string) (string, string, error) {
	if project == "" {
		project = e.Project
	}
	if workspace == "" {
		workspace = e.Workspace
	}
	if project == "" || workspace == "" {
		return "", "", fmt.Errorf(
			"%w: project and workspace are required (pass --project/--workspace or set them in tessenv)",
			flarc.ErrUsage,
		)
	}
	return project, workspace, nil
}
