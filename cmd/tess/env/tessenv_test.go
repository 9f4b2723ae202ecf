package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tesserabio/tessera/cmd/tess/env"
)

func TestLoadTessEnv(t *testing.T) {
	t.Run("it loads defaults from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tessenv")
		content := `
project: broad-gp
workspace: wgs-2024
methodNamespace: broadgp
entityType: pair
pageSize: 250
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		e, err := env.LoadTessEnv(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Project != "broad-gp" || e.Workspace != "wgs-2024" {
			t.Errorf("unexpected env: %+v", e)
		}
		if e.EntityTypeOr() != "pair" {
			t.Errorf("wrong entity type: %s", e.EntityTypeOr())
		}
		if e.PageSizeOr() != 250 {
			t.Errorf("wrong page size: %d", e.PageSizeOr())
		}
	})

	t.Run("a missing file yields empty env with defaults", func(t *testing.T) {
		e, err := env.LoadTessEnv(filepath.Join(t.TempDir(), "no-such-file"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Project != "" || e.Workspace != "" {
			t.Errorf("unexpected env: %+v", e)
		}
		if e.EntityTypeOr() != env.DefaultEntityType {
			t.Errorf("wrong entity type: %s", e.EntityTypeOr())
		}
		if e.PageSizeOr() != env.DefaultPageSize {
			t.Errorf("wrong page size: %d", e.PageSizeOr())
		}
	})

	t.Run("broken yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tessenv")
		if err := os.WriteFile(path, []byte(":\tbroken"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := env.LoadTessEnv(path); err == nil {
			t.Error("error expected for broken yaml")
		}
	})
}
