// Package entities has types for the data-model entities of the
// Tessera platform (samples, participants, sets and friends).
package entities

// Entity is one row of the workspace data model.
type Entity struct {
	Name       string         `json:"name"`
	EntityType string         `json:"entityType"`
	Attributes map[string]any `json:"attributes"`
}

// TypeMetadata describes one entity type of a workspace.
type TypeMetadata struct {
	Count          int      `json:"count"`
	IdName         string   `json:"idName"`
	AttributeNames []string `json:"attributeNames"`
}

// QueryResult is one page of an entityQuery response.
type QueryResult struct {
	Results        []Entity     `json:"results"`
	ResultMetadata PageMetadata `json:"resultMetadata"`
}

type PageMetadata struct {
	UnfilteredCount   int `json:"unfilteredCount"`
	FilteredCount     int `json:"filteredCount"`
	FilteredPageCount int `json:"filteredPageCount"`
}

// Reference identifies one entity, for deletion and copying.
type Reference struct {
	EntityType string `json:"entityType"`
	EntityName string `json:"entityName"`
}

// CopyRequest is the body for copying entities across workspaces.
type CopyRequest struct {
	SourceWorkspace      WorkspaceRef `json:"sourceWorkspace"`
	DestinationWorkspace WorkspaceRef `json:"destinationWorkspace"`
	EntityType           string       `json:"entityType"`
	EntityNames          []string     `json:"entityNames"`
	LinkExistingEntities bool         `json:"linkExistingEntities"`
}

type WorkspaceRef struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}
