// Package configs has types for method configurations: named, versioned
// bindings of a method to workspace inputs and outputs.
package configs

// Method points at a method in the method repository.
type Method struct {
	MethodNamespace string `json:"methodNamespace"`
	MethodName      string `json:"methodName"`
	MethodVersion   int    `json:"methodVersion"`
}

func (m Method) Equal(o Method) bool {
	return m == o
}

// Summary is one element of the method configuration list.
type Summary struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	RootEntityType   string `json:"rootEntityType,omitempty"`
	MethodRepoMethod Method `json:"methodRepoMethod"`
}

// Detail is the full method configuration.
type Detail struct {
	Namespace           string            `json:"namespace"`
	Name                string            `json:"name"`
	RootEntityType      string            `json:"rootEntityType,omitempty"`
	MethodRepoMethod    Method            `json:"methodRepoMethod"`
	Inputs              map[string]string `json:"inputs"`
	Outputs             map[string]string `json:"outputs"`
	Prerequisites       map[string]string `json:"prerequisites,omitempty"`
	MethodConfigVersion int               `json:"methodConfigVersion,omitempty"`
	Deleted             bool              `json:"deleted,omitempty"`
}
