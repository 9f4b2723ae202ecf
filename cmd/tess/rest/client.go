package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	tprof "github.com/tesserabio/tessera/cmd/tess/config/profiles"
	"github.com/tesserabio/tessera/pkg/api/types/configs"
	"github.com/tesserabio/tessera/pkg/api/types/entities"
	"github.com/tesserabio/tessera/pkg/api/types/submissions"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/tesserabio/tessera/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth scopes requested for tokens sent to the platform.
var Scopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/cloud-platform",
}

// TessClient is the REST client for the Tessera platform.
//
// Every method is a thin wrapper over one endpoint: it builds the request,
// sends it, and decodes the response. No retry, no caching.
type TessClient interface {
	// Health gets the platform health summary, as free text.
	Health(ctx context.Context) (string, error)

	// ListWorkspaces lists every workspace the caller can read.
	ListWorkspaces(ctx context.Context) ([]workspaces.Entry, error)

	// GetWorkspace gets one workspace.
	//
	// fields, when not empty, restricts the response to the named fields
	// (dotted paths, like "workspace.attributes").
	GetWorkspace(ctx context.Context, project, name string, fields ...string) (workspaces.Entry, error)

	// CreateWorkspace makes a new workspace.
	CreateWorkspace(ctx context.Context, req workspaces.CreateRequest) (workspaces.Detail, error)

	// DeleteWorkspace deletes a workspace and its bucket.
	DeleteWorkspace(ctx context.Context, project, name string) error

	// CloneWorkspace copies a workspace into a new one.
	CloneWorkspace(ctx context.Context, fromProject, fromName string, req workspaces.CloneRequest) (workspaces.Detail, error)

	// LockWorkspace locks a workspace against modification.
	LockWorkspace(ctx context.Context, project, name string) error

	// UnlockWorkspace reverts LockWorkspace.
	UnlockWorkspace(ctx context.Context, project, name string) error

	// GetWorkspaceACL gets the access control list of a workspace.
	GetWorkspaceACL(ctx context.Context, project, name string) (workspaces.ACL, error)

	// UpdateWorkspaceACL applies ACL updates.
	//
	// inviteNew controls whether users unknown to the platform are invited.
	UpdateWorkspaceACL(ctx context.Context, project, name string, updates []workspaces.ACLUpdate, inviteNew bool) (workspaces.ACLUpdateResult, error)

	// UpdateWorkspaceAttributes applies attribute operations at workspace level.
	UpdateWorkspaceAttributes(ctx context.Context, project, name string, updates []attributes.Update) error

	// ListEntityTypes maps entity type name to its metadata.
	ListEntityTypes(ctx context.Context, project, workspace string) (map[string]entities.TypeMetadata, error)

	// QueryEntities gets one page of entities of a type.
	QueryEntities(ctx context.Context, project, workspace, etype string, query EntityQuery) (entities.QueryResult, error)

	// GetEntity gets one entity with its attributes.
	GetEntity(ctx context.Context, project, workspace, etype, name string) (entities.Entity, error)

	// UpdateEntity applies attribute operations to one entity.
	UpdateEntity(ctx context.Context, project, workspace, etype, name string, updates []attributes.Update) (entities.Entity, error)

	// UploadEntities imports a TSV loadfile chunk into the workspace data model.
	UploadEntities(ctx context.Context, project, workspace, tsv string) error

	// DeleteEntities removes entities from the workspace data model.
	DeleteEntities(ctx context.Context, project, workspace string, refs []entities.Reference) error

	// CopyEntities copies entities between workspaces.
	CopyEntities(ctx context.Context, req entities.CopyRequest) error

	// ListMethodConfigs lists the method configurations of a workspace.
	ListMethodConfigs(ctx context.Context, project, workspace string) ([]configs.Summary, error)

	// GetMethodConfig gets one method configuration.
	GetMethodConfig(ctx context.Context, project, workspace, namespace, name string) (configs.Detail, error)

	// PutMethodConfig creates or overwrites a method configuration.
	PutMethodConfig(ctx context.Context, project, workspace, namespace, name string, config configs.Detail) (configs.Detail, error)

	// ListSubmissions lists the submissions of a workspace.
	ListSubmissions(ctx context.Context, project, workspace string) ([]submissions.Summary, error)

	// CreateSubmission submits a method configuration for execution.
	CreateSubmission(ctx context.Context, project, workspace string, req submissions.Request) (submissions.Created, error)

	// GetSubmission gets a submission with its workflow statuses.
	GetSubmission(ctx context.Context, project, workspace, submissionId string) (submissions.Detail, error)

	// AbortSubmission aborts a running submission.
	AbortSubmission(ctx context.Context, project, workspace, submissionId string) error
}

// EntityQuery is the paging/filtering part of QueryEntities.
type EntityQuery struct {
	Page          int
	PageSize      int
	SortDirection string
	FilterTerms   string
	Fields        []string
}

type client struct {
	httpclient *http.Client
	api        string
}

// NewClient creates a TessClient for the given Profile.
//
// When the profile names a credentials file, tokens are minted from it.
// Otherwise Application Default Credentials are used when available, and
// the client stays unauthenticated when they are not (useful against
// local or test deployments).
//
// If the profile is invalid, ErrProfileInvalid is returned.
func NewClient(ctx context.Context, prof *tprof.Profile) (TessClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	ts, err := tokenSource(ctx, prof)
	if err != nil {
		return nil, err
	}
	if ts != nil {
		httpclient = &http.Client{
			Transport: &oauth2.Transport{Source: ts, Base: httpclient.Transport},
			Timeout:   httpclient.Timeout,
		}
	}

	c := &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
	}

	return c, nil
}

func tokenSource(ctx context.Context, prof *tprof.Profile) (oauth2.TokenSource, error) {
	if prof.Credentials != "" {
		buf, err := os.ReadFile(prof.Credentials)
		if err != nil {
			return nil, err
		}
		creds, err := google.CredentialsFromJSON(ctx, buf, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("cannot use credentials at %s: %w", prof.Credentials, err)
		}
		return creds.TokenSource, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, Scopes...)
	if err != nil {
		// no ambient credentials; proceed unauthenticated
		return nil, nil
	}
	return creds.TokenSource, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
