package env

import (
	"os"

	"gopkg.in/yaml.v3"
)

// defaults applied when tessenv does not say otherwise.
const (
	DefaultEntityType = "sample_set"
	DefaultPageSize   = 1000
)

// TessEnv carries per-directory defaults for commands: the billing project,
// workspace and method namespace to operate on when flags do not say.
//
// It is loaded from a `tessenv` yaml file found upward from the working
// directory. A missing file is not an error; all defaults stay empty.
type TessEnv struct {
	Project         string `yaml:"project"`
	Workspace       string `yaml:"workspace"`
	MethodNamespace string `yaml:"methodNamespace"`
	EntityType      string `yaml:"entityType"`
	PageSize        int    `yaml:"pageSize"`
}

func New() *TessEnv {
	return new(TessEnv)
}

// EntityTypeOr returns the configured entity type, or the platform default.
func (e *TessEnv) EntityTypeOr() string {
	if e.EntityType == "" {
		return DefaultEntityType
	}
	return e.EntityType
}

// PageSizeOr returns the configured page size, or the platform default.
func (e *TessEnv) PageSizeOr() int {
	if e.PageSize <= 0 {
		return DefaultPageSize
	}
	return e.PageSize
}

func LoadTessEnv(filepath string) (*TessEnv, error) {
	env := TessEnv{}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return &env, nil
	}

	err = yaml.Unmarshal(content, &env)
	if err != nil {
		return nil, err
	}

	return &env, nil
}
