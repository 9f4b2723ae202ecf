// Package workspaces has types for the workspace resources of the
// Tessera platform.
package workspaces

// Access levels a user can hold on a workspace, strongest first.
const (
	AccessProjectOwner = "PROJECT_OWNER"
	AccessOwner        = "OWNER"
	AccessWriter       = "WRITER"
	AccessReader       = "READER"
	AccessNoAccess     = "NO ACCESS"
)

// Detail is the workspace object as the platform returns it.
type Detail struct {
	Namespace    string         `json:"namespace"`
	Name         string         `json:"name"`
	BucketName   string         `json:"bucketName,omitempty"`
	CreatedBy    string         `json:"createdBy,omitempty"`
	CreatedDate  string         `json:"createdDate,omitempty"`
	LastModified string         `json:"lastModified,omitempty"`
	IsLocked     bool           `json:"isLocked,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`
}

func (d Detail) Id() string {
	return d.Namespace + "/" + d.Name
}

// Entry is one element of the workspace list: the workspace itself plus
// the access level the caller has on it.
type Entry struct {
	AccessLevel string `json:"accessLevel"`
	Workspace   Detail `json:"workspace"`
}

// CreateRequest is the body for creating a new workspace.
type CreateRequest struct {
	Namespace           string         `json:"namespace"`
	Name                string         `json:"name"`
	Attributes          map[string]any `json:"attributes"`
	AuthorizationDomain []GroupRef     `json:"authorizationDomain,omitempty"`
	NoWorkspaceOwner    bool           `json:"noWorkspaceOwner,omitempty"`
	BucketLocation      string         `json:"bucketLocation,omitempty"`
	CopyFilesWithPrefix string         `json:"copyFilesWithPrefix,omitempty"`
}

type GroupRef struct {
	MembersGroupName string `json:"membersGroupName"`
}

// CloneRequest is the body for cloning a workspace into a new one.
type CloneRequest struct {
	Namespace  string         `json:"namespace"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
}

// ACL maps user email to the access granted.
type ACL struct {
	Acl map[string]AccessEntry `json:"acl"`
}

type AccessEntry struct {
	AccessLevel string `json:"accessLevel"`
	Pending     bool   `json:"pending,omitempty"`
	CanShare    bool   `json:"canShare,omitempty"`
	CanCompute  bool   `json:"canCompute,omitempty"`
}

// ACLUpdate is one element of the PATCH acl body.
type ACLUpdate struct {
	Email       string `json:"email"`
	AccessLevel string `json:"accessLevel"`
	CanShare    *bool  `json:"canShare,omitempty"`
	CanCompute  *bool  `json:"canCompute,omitempty"`
}

// ACLUpdateResult reports which updates took effect and which need the
// invitee to register first.
type ACLUpdateResult struct {
	UsersUpdated   []ACLUpdate `json:"usersUpdated"`
	UsersNotFound  []ACLUpdate `json:"usersNotFound"`
	InvitesSent    []ACLUpdate `json:"invitesSent"`
	InvitesUpdated []ACLUpdate `json:"invitesUpdated"`
}
