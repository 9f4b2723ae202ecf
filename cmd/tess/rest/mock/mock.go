package mock

import (
	"context"
	"testing"

	"github.com/tesserabio/tessera/cmd/tess/rest"
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/tesserabio/tessera/pkg/api/types/configs"
	"github.com/tesserabio/tessera/pkg/api/types/entities"
	"github.com/tesserabio/tessera/pkg/api/types/submissions"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
)

type WorkspaceArgs struct {
	Project string
	Name    string
}

type EntityArgs struct {
	Project    string
	Workspace  string
	EntityType string
	Name       string
}

type UpdateAttributesArgs struct {
	Project   string
	Workspace string
	Updates   []attributes.Update
}

type UpdateEntityArgs struct {
	EntityArgs
	Updates []attributes.Update
}

type QueryEntitiesArgs struct {
	Project    string
	Workspace  string
	EntityType string
	Query      rest.EntityQuery
}

type MethodConfigArgs struct {
	Project   string
	Workspace string
	Namespace string
	Name      string
}

type CreateSubmissionArgs struct {
	Project   string
	Workspace string
	Request   submissions.Request
}

type SubmissionArgs struct {
	Project      string
	Workspace    string
	SubmissionId string
}

func New(t *testing.T) *mockTessClient {
	return &mockTessClient{t: t}
}

type mockTessClient struct {
	t    *testing.T
	Impl struct {
		Health                    func(ctx context.Context) (string, error)
		ListWorkspaces            func(ctx context.Context) ([]workspaces.Entry, error)
		GetWorkspace              func(ctx context.Context, project, name string, fields ...string) (workspaces.Entry, error)
		CreateWorkspace           func(ctx context.Context, req workspaces.CreateRequest) (workspaces.Detail, error)
		DeleteWorkspace           func(ctx context.Context, project, name string) error
		CloneWorkspace            func(ctx context.Context, fromProject, fromName string, req workspaces.CloneRequest) (workspaces.Detail, error)
		LockWorkspace             func(ctx context.Context, project, name string) error
		UnlockWorkspace           func(ctx context.Context, project, name string) error
		GetWorkspaceACL           func(ctx context.Context, project, name string) (workspaces.ACL, error)
		UpdateWorkspaceACL        func(ctx context.Context, project, name string, updates []workspaces.ACLUpdate, inviteNew bool) (workspaces.ACLUpdateResult, error)
		UpdateWorkspaceAttributes func(ctx context.Context, project, name string, updates []attributes.Update) error
		ListEntityTypes           func(ctx context.Context, project, workspace string) (map[string]entities.TypeMetadata, error)
		QueryEntities             func(ctx context.Context, project, workspace, etype string, query rest.EntityQuery) (entities.QueryResult, error)
		GetEntity                 func(ctx context.Context, project, workspace, etype, name string) (entities.Entity, error)
		UpdateEntity              func(ctx context.Context, project, workspace, etype, name string, updates []attributes.Update) (entities.Entity, error)
		UploadEntities            func(ctx context.Context, project, workspace, tsv string) error
		DeleteEntities            func(ctx context.Context, project, workspace string, refs []entities.Reference) error
		CopyEntities              func(ctx context.Context, req entities.CopyRequest) error
		ListMethodConfigs         func(ctx context.Context, project, workspace string) ([]configs.Summary, error)
		GetMethodConfig           func(ctx context.Context, project, workspace, namespace, name string) (configs.Detail, error)
		PutMethodConfig           func(ctx context.Context, project, workspace, namespace, name string, config configs.Detail) (configs.Detail, error)
		ListSubmissions           func(ctx context.Context, project, workspace string) ([]submissions.Summary, error)
		CreateSubmission          func(ctx context.Context, project, workspace string, req submissions.Request) (submissions.Created, error)
		GetSubmission             func(ctx context.Context, project, workspace, submissionId string) (submissions.Detail, error)
		AbortSubmission           func(ctx context.Context, project, workspace, submissionId string) error
	}
	Calls struct {
		Health                    int
		ListWorkspaces            int
		GetWorkspace              []WorkspaceArgs
		CreateWorkspace           []workspaces.CreateRequest
		DeleteWorkspace           []WorkspaceArgs
		CloneWorkspace            []WorkspaceArgs
		LockWorkspace             []WorkspaceArgs
		UnlockWorkspace           []WorkspaceArgs
		GetWorkspaceACL           []WorkspaceArgs
		UpdateWorkspaceACL        []WorkspaceArgs
		UpdateWorkspaceAttributes []UpdateAttributesArgs
		ListEntityTypes           []WorkspaceArgs
		QueryEntities             []QueryEntitiesArgs
		GetEntity                 []EntityArgs
		UpdateEntity              []UpdateEntityArgs
		UploadEntities            []string
		DeleteEntities            [][]entities.Reference
		CopyEntities              []entities.CopyRequest
		ListMethodConfigs         []WorkspaceArgs
		GetMethodConfig           []MethodConfigArgs
		PutMethodConfig           []MethodConfigArgs
		ListSubmissions           []WorkspaceArgs
		CreateSubmission          []CreateSubmissionArgs
		GetSubmission             []SubmissionArgs
		AbortSubmission           []SubmissionArgs
	}
}

var _ rest.TessClient = &mockTessClient{}

func (m *mockTessClient) Health(ctx context.Context) (string, error) {
	m.t.Helper()
	m.Calls.Health += 1
	if m.Impl.Health == nil {
		m.t.Fatal("Health is not ready to be called")
	}
	return m.Impl.Health(ctx)
}

func (m *mockTessClient) ListWorkspaces(ctx context.Context) ([]workspaces.Entry, error) {
	m.t.Helper()
	m.Calls.ListWorkspaces += 1
	if m.Impl.ListWorkspaces == nil {
		m.t.Fatal("ListWorkspaces is not ready to be called")
	}
	return m.Impl.ListWorkspaces(ctx)
}

func (m *mockTessClient) GetWorkspace(ctx context.Context, project, name string, fields ...string) (workspaces.Entry, error) {
	m.t.Helper()
	m.Calls.GetWorkspace = append(m.Calls.GetWorkspace, WorkspaceArgs{Project: project, Name: name})
	if m.Impl.GetWorkspace == nil {
		m.t.Fatal("GetWorkspace is not ready to be called")
	}
	return m.Impl.GetWorkspace(ctx, project, name, fields...)
}

func (m *mockTessClient) CreateWorkspace(ctx context.Context, req workspaces.CreateRequest) (workspaces.Detail, error) {
	m.t.Helper()
	m.Calls.CreateWorkspace = append(m.Calls.CreateWorkspace, req)
	if m.Impl.CreateWorkspace == nil {
		m.t.Fatal("CreateWorkspace is not ready to be called")
	}
	return m.Impl.CreateWorkspace(ctx, req)
}

func (m *mockTessClient) DeleteWorkspace(ctx context.Context, project, name string) error {
	m.t.Helper()
	m.Calls.DeleteWorkspace = append(m.Calls.DeleteWorkspace, WorkspaceArgs{Project: project, Name: name})
	if m.Impl.DeleteWorkspace == nil {
		m.t.Fatal("DeleteWorkspace is not ready to be called")
	}
	return m.Impl.DeleteWorkspace(ctx, project, name)
}

func (m *mockTessClient) CloneWorkspace(ctx context.Context, fromProject, fromName string, req workspaces.CloneRequest) (workspaces.Detail, error) {
	m.t.Helper()
	m.Calls.CloneWorkspace = append(m.Calls.CloneWorkspace, WorkspaceArgs{Project: fromProject, Name: fromName})
	if m.Impl.CloneWorkspace == nil {
		m.t.Fatal("CloneWorkspace is not ready to be called")
	}
	return m.Impl.CloneWorkspace(ctx, fromProject, fromName, req)
}

func (m *mockTessClient) LockWorkspace(ctx context.Context, project, name string) error {
	m.t.Helper()
	m.Calls.LockWorkspace = append(m.Calls.LockWorkspace, WorkspaceArgs{Project: project, Name: name})
	if m.Impl.LockWorkspace == nil {
		m.t.Fatal("LockWorkspace is not ready to be called")
	}
	return m.Impl.LockWorkspace(ctx, project, name)
}

func (m *mockTessClient) UnlockWorkspace(ctx context.Context, project, name string) error {
	m.t.Helper()
	m.Calls.UnlockWorkspace = append(m.Calls.UnlockWorkspace, WorkspaceArgs{Project: project, Name: name})
	if m.Impl.UnlockWorkspace == nil {
		m.t.Fatal("UnlockWorkspace is not ready to be called")
	}
	return m.Impl.UnlockWorkspace(ctx, project, name)
}

func (m *mockTessClient) GetWorkspaceACL(ctx context.Context, project, name string) (workspaces.ACL, error) {
	m.t.Helper()
	m.Calls.GetWorkspaceACL = append(m.Calls.GetWorkspaceACL, WorkspaceArgs{Project: project, Name: name})
	if m.Impl.GetWorkspaceACL == nil {
		m.t.Fatal("GetWorkspaceACL is not ready to be called")
	}
	return m.Impl.GetWorkspaceACL(ctx, project, name)
}

func (m *mockTessClient) UpdateWorkspaceACL(
	ctx context.Context, project, name string, updates []workspaces.ACLUpdate, inviteNew bool,
) (workspaces.ACLUpdateResult, error) {
	m.t.Helper()
	m.Calls.UpdateWorkspaceACL = append(m.Calls.UpdateWorkspaceACL, WorkspaceArgs{Project: project, Name: name})
	if m.Impl.UpdateWorkspaceACL == nil {
		m.t.Fatal("UpdateWorkspaceACL is not ready to be called")
	}
	return m.Impl.UpdateWorkspaceACL(ctx, project, name, updates, inviteNew)
}

func (m *mockTessClient) UpdateWorkspaceAttributes(ctx context.Context, project, name string, updates []attributes.Update) error {
	m.t.Helper()
	m.Calls.UpdateWorkspaceAttributes = append(
		m.Calls.UpdateWorkspaceAttributes,
		UpdateAttributesArgs{Project: project, Workspace: name, Updates: updates},
	)
	if m.Impl.UpdateWorkspaceAttributes == nil {
		m.t.Fatal("UpdateWorkspaceAttributes is not ready to be called")
	}
	return m.Impl.UpdateWorkspaceAttributes(ctx, project, name, updates)
}

func (m *mockTessClient) ListEntityTypes(ctx context.Context, project, workspace string) (map[string]entities.TypeMetadata, error) {
	m.t.Helper()
	m.Calls.ListEntityTypes = append(m.Calls.ListEntityTypes, WorkspaceArgs{Project: project, Name: workspace})
	if m.Impl.ListEntityTypes == nil {
		m.t.Fatal("ListEntityTypes is not ready to be called")
	}
	return m.Impl.ListEntityTypes(ctx, project, workspace)
}

func (m *mockTessClient) QueryEntities(ctx context.Context, project, workspace, etype string, query rest.EntityQuery) (entities.QueryResult, error) {
	m.t.Helper()
	m.Calls.QueryEntities = append(
		m.Calls.QueryEntities,
		QueryEntitiesArgs{Project: project, Workspace: workspace, EntityType: etype, Query: query},
	)
	if m.Impl.QueryEntities == nil {
		m.t.Fatal("QueryEntities is not ready to be called")
	}
	return m.Impl.QueryEntities(ctx, project, workspace, etype, query)
}

func (m *mockTessClient) GetEntity(ctx context.Context, project, workspace, etype, name string) (entities.Entity, error) {
	m.t.Helper()
	m.Calls.GetEntity = append(
		m.Calls.GetEntity,
		EntityArgs{Project: project, Workspace: workspace, EntityType: etype, Name: name},
	)
	if m.Impl.GetEntity == nil {
		m.t.Fatal("GetEntity is not ready to be called")
	}
	return m.Impl.GetEntity(ctx, project, workspace, etype, name)
}

func (m *mockTessClient) UpdateEntity(ctx context.Context, project, workspace, etype, name string, updates []attributes.Update) (entities.Entity, error) {
	m.t.Helper()
	m.Calls.UpdateEntity = append(
		m.Calls.UpdateEntity,
		UpdateEntityArgs{
			EntityArgs: EntityArgs{Project: project, Workspace: workspace, EntityType: etype, Name: name},
			Updates:    updates,
		},
	)
	if m.Impl.UpdateEntity == nil {
		m.t.Fatal("UpdateEntity is not ready to be called")
	}
	return m.Impl.UpdateEntity(ctx, project, workspace, etype, name, updates)
}

func (m *mockTessClient) UploadEntities(ctx context.Context, project, workspace, tsv string) error {
	m.t.Helper()
	m.Calls.UploadEntities = append(m.Calls.UploadEntities, tsv)
	if m.Impl.UploadEntities == nil {
		m.t.Fatal("UploadEntities is not ready to be called")
	}
	return m.Impl.UploadEntities(ctx, project, workspace, tsv)
}

func (m *mockTessClient) DeleteEntities(ctx context.Context, project, workspace string, refs []entities.Reference) error {
	m.t.Helper()
	m.Calls.DeleteEntities = append(m.Calls.DeleteEntities, refs)
	if m.Impl.DeleteEntities == nil {
		m.t.Fatal("DeleteEntities is not ready to be called")
	}
	return m.Impl.DeleteEntities(ctx, project, workspace, refs)
}

func (m *mockTessClient) CopyEntities(ctx context.Context, req entities.CopyRequest) error {
	m.t.Helper()
	m.Calls.CopyEntities = append(m.Calls.CopyEntities, req)
	if m.Impl.CopyEntities == nil {
		m.t.Fatal("CopyEntities is not ready to be called")
	}
	return m.Impl.CopyEntities(ctx, req)
}

func (m *mockTessClient) ListMethodConfigs(ctx context.Context, project, workspace string) ([]configs.Summary, error) {
	m.t.Helper()
	m.Calls.ListMethodConfigs = append(m.Calls.ListMethodConfigs, WorkspaceArgs{Project: project, Name: workspace})
	if m.Impl.ListMethodConfigs == nil {
		m.t.Fatal("ListMethodConfigs is not ready to be called")
	}
	return m.Impl.ListMethodConfigs(ctx, project, workspace)
}

func (m *mockTessClient) GetMethodConfig(ctx context.Context, project, workspace, namespace, name string) (configs.Detail, error) {
	m.t.Helper()
	m.Calls.GetMethodConfig = append(
		m.Calls.GetMethodConfig,
		MethodConfigArgs{Project: project, Workspace: workspace, Namespace: namespace, Name: name},
	)
	if m.Impl.GetMethodConfig == nil {
		m.t.Fatal("GetMethodConfig is not ready to be called")
	}
	return m.Impl.GetMethodConfig(ctx, project, workspace, namespace, name)
}

func (m *mockTessClient) PutMethodConfig(ctx context.Context, project, workspace, namespace, name string, config configs.Detail) (configs.Detail, error) {
	m.t.Helper()
	m.Calls.PutMethodConfig = append(
		m.Calls.PutMethodConfig,
		MethodConfigArgs{Project: project, Workspace: workspace, Namespace: namespace, Name: name},
	)
	if m.Impl.PutMethodConfig == nil {
		m.t.Fatal("PutMethodConfig is not ready to be called")
	}
	return m.Impl.PutMethodConfig(ctx, project, workspace, namespace, name, config)
}

func (m *mockTessClient) ListSubmissions(ctx context.Context, project, workspace string) ([]submissions.Summary, error) {
	m.t.Helper()
	m.Calls.ListSubmissions = append(m.Calls.ListSubmissions, WorkspaceArgs{Project: project, Name: workspace})
	if m.Impl.ListSubmissions == nil {
		m.t.Fatal("ListSubmissions is not ready to be called")
	}
	return m.Impl.ListSubmissions(ctx, project, workspace)
}

func (m *mockTessClient) CreateSubmission(ctx context.Context, project, workspace string, req submissions.Request) (submissions.Created, error) {
	m.t.Helper()
	m.Calls.CreateSubmission = append(
		m.Calls.CreateSubmission,
		CreateSubmissionArgs{Project: project, Workspace: workspace, Request: req},
	)
	if m.Impl.CreateSubmission == nil {
		m.t.Fatal("CreateSubmission is not ready to be called")
	}
	return m.Impl.CreateSubmission(ctx, project, workspace, req)
}

func (m *mockTessClient) GetSubmission(ctx context.Context, project, workspace, submissionId string) (submissions.Detail, error) {
	m.t.Helper()
	m.Calls.GetSubmission = append(
		m.Calls.GetSubmission,
		SubmissionArgs{Project: project, Workspace: workspace, SubmissionId: submissionId},
	)
	if m.Impl.GetSubmission == nil {
		m.t.Fatal("GetSubmission is not ready to be called")
	}
	return m.Impl.GetSubmission(ctx, project, workspace, submissionId)
}

func (m *mockTessClient) AbortSubmission(ctx context.Context, project, workspace, submissionId string) error {
	m.t.Helper()
	m.Calls.AbortSubmission = append(
		m.Calls.AbortSubmission,
		SubmissionArgs{Project: project, Workspace: workspace, SubmissionId: submissionId},
	)
	if m.Impl.AbortSubmission == nil {
		m.t.Fatal("AbortSubmission is not ready to be called")
	}
	return m.Impl.AbortSubmission(ctx, project, workspace, submissionId)
}
