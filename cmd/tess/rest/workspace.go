package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/tesserabio/tessera/pkg/api/types/workspaces"
)

func (c *client) ListWorkspaces(ctx context.Context) ([]workspaces.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("workspaces"), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	entries := make([]workspaces.Entry, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &entries,
		MessageFor{
			Status4xx: "cannot list workspaces",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *client) GetWorkspace(ctx context.Context, project, name string, fields ...string) (workspaces.Entry, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("workspaces", project, name), nil,
	)
	if err != nil {
		return workspaces.Entry{}, err
	}
	if 0 < len(fields) {
		q := req.URL.Query()
		q.Add("fields", strings.Join(fields, ","))
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return workspaces.Entry{}, err
	}
	defer resp.Body.Close()

	var entry workspaces.Entry
	if err := unmarshalJsonResponse(
		resp, &entry,
		MessageFor{
			Status4xx: fmt.Sprintf("workspace %s/%s is not found", project, name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return workspaces.Entry{}, err
	}
	return entry, nil
}

func (c *client) CreateWorkspace(ctx context.Context, spec workspaces.CreateRequest) (workspaces.Detail, error) {
	if spec.Attributes == nil {
		spec.Attributes = map[string]any{}
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return workspaces.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("workspaces"), bytes.NewReader(body),
	)
	if err != nil {
		return workspaces.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return workspaces.Detail{}, err
	}
	defer resp.Body.Close()

	var created workspaces.Detail
	if err := unmarshalJsonResponse(
		resp, &created,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot create workspace %s/%s", spec.Namespace, spec.Name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return workspaces.Detail{}, err
	}
	return created, nil
}

func (c *client) DeleteWorkspace(ctx context.Context, project, name string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.apipath("workspaces", project, name), nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("workspace %s/%s cannot be deleted", project, name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) CloneWorkspace(ctx context.Context, fromProject, fromName string, spec workspaces.CloneRequest) (workspaces.Detail, error) {
	if spec.Attributes == nil {
		spec.Attributes = map[string]any{}
	}
	body, err := json.Marshal(spec)
	if err != nil {
		return workspaces.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("workspaces", fromProject, fromName, "clone"),
		bytes.NewReader(body),
	)
	if err != nil {
		return workspaces.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return workspaces.Detail{}, err
	}
	defer resp.Body.Close()

	var created workspaces.Detail
	if err := unmarshalJsonResponse(
		resp, &created,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot clone workspace %s/%s", fromProject, fromName),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return workspaces.Detail{}, err
	}
	return created, nil
}

func (c *client) LockWorkspace(ctx context.Context, project, name string) error {
	return c.putLockState(ctx, project, name, "lock")
}

func (c *client) UnlockWorkspace(ctx context.Context, project, name string) error {
	return c.putLockState(ctx, project, name, "unlock")
}

func (c *client) putLockState(ctx context.Context, project, name, state string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("workspaces", project, name, state), nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot %s workspace %s/%s", state, project, name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) GetWorkspaceACL(ctx context.Context, project, name string) (workspaces.ACL, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("workspaces", project, name, "acl"), nil,
	)
	if err != nil {
		return workspaces.ACL{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return workspaces.ACL{}, err
	}
	defer resp.Body.Close()

	var acl workspaces.ACL
	if err := unmarshalJsonResponse(
		resp, &acl,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot read ACL of workspace %s/%s", project, name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return workspaces.ACL{}, err
	}
	return acl, nil
}

func (c *client) UpdateWorkspaceACL(
	ctx context.Context, project, name string,
	updates []workspaces.ACLUpdate, inviteNew bool,
) (workspaces.ACLUpdateResult, error) {
	body, err := json.Marshal(updates)
	if err != nil {
		return workspaces.ACLUpdateResult{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPatch,
		c.apipath("workspaces", project, name, "acl")+fmt.Sprintf("?inviteUsersNotFound=%t", inviteNew),
		bytes.NewReader(body),
	)
	if err != nil {
		return workspaces.ACLUpdateResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return workspaces.ACLUpdateResult{}, err
	}
	defer resp.Body.Close()

	var result workspaces.ACLUpdateResult
	if err := unmarshalJsonResponse(
		resp, &result,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update ACL of workspace %s/%s", project, name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return workspaces.ACLUpdateResult{}, err
	}
	return result, nil
}

func (c *client) UpdateWorkspaceAttributes(
	ctx context.Context, project, name string, updates []attributes.Update,
) error {
	body, err := json.Marshal(updates)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPatch,
		c.apipath("workspaces", project, name, "updateAttributes"),
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update attributes of workspace %s/%s", project, name),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}
