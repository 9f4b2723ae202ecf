package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tesserabio/tessera/pkg/api/types/attributes"
	"github.com/tesserabio/tessera/pkg/api/types/entities"
)

func (c *client) ListEntityTypes(ctx context.Context, project, workspace string) (map[string]entities.TypeMetadata, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("workspaces", project, workspace, "entities"), nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	types := map[string]entities.TypeMetadata{}
	if err := unmarshalJsonResponse(
		resp, &types,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list entity types of workspace %s/%s", project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *client) QueryEntities(
	ctx context.Context, project, workspace, etype string, query EntityQuery,
) (entities.QueryResult, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("workspaces", project, workspace, "entityQuery", etype), nil,
	)
	if err != nil {
		return entities.QueryResult{}, err
	}

	q := req.URL.Query()
	q.Add("page", strconv.Itoa(max(query.Page, 1)))
	q.Add("pageSize", strconv.Itoa(max(query.PageSize, 1)))
	sortDirection := query.SortDirection
	if sortDirection == "" {
		sortDirection = "asc"
	}
	q.Add("sortDirection", sortDirection)
	if query.FilterTerms != "" {
		q.Add("filterTerms", query.FilterTerms)
	}
	if 0 < len(query.Fields) {
		q.Add("fields", strings.Join(query.Fields, ","))
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return entities.QueryResult{}, err
	}
	defer resp.Body.Close()

	var page entities.QueryResult
	if err := unmarshalJsonResponse(
		resp, &page,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot query %s entities of workspace %s/%s", etype, project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return entities.QueryResult{}, err
	}
	return page, nil
}

func (c *client) GetEntity(ctx context.Context, project, workspace, etype, name string) (entities.Entity, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("workspaces", project, workspace, "entities", etype, name), nil,
	)
	if err != nil {
		return entities.Entity{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return entities.Entity{}, err
	}
	defer resp.Body.Close()

	var ent entities.Entity
	if err := unmarshalJsonResponse(
		resp, &ent,
		MessageFor{
			Status4xx: fmt.Sprintf("%s:%s is not found in workspace %s/%s", etype, name, project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return entities.Entity{}, err
	}
	return ent, nil
}

func (c *client) UpdateEntity(
	ctx context.Context, project, workspace, etype, name string, updates []attributes.Update,
) (entities.Entity, error) {
	body, err := json.Marshal(updates)
	if err != nil {
		return entities.Entity{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPatch,
		c.apipath("workspaces", project, workspace, "entities", etype, name),
		bytes.NewReader(body),
	)
	if err != nil {
		return entities.Entity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return entities.Entity{}, err
	}
	defer resp.Body.Close()

	var ent entities.Entity
	if err := unmarshalJsonResponse(
		resp, &ent,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update %s:%s in workspace %s/%s", etype, name, project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return entities.Entity{}, err
	}
	return ent, nil
}

func (c *client) UploadEntities(ctx context.Context, project, workspace, tsv string) error {
	form := url.Values{}
	form.Set("entities", tsv)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("workspaces", project, workspace, "importEntities"),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot import entities into workspace %s/%s", project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) DeleteEntities(ctx context.Context, project, workspace string, refs []entities.Reference) error {
	body, err := json.Marshal(refs)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("workspaces", project, workspace, "entities", "delete"),
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
			Status4xx: fmt.Sprintf("cannot delete entities from workspace %s/%s", project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) CopyEntities(ctx context.Context, spec entities.CopyRequest) error {
	body, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("workspaces", "entities", "copy")+fmt.Sprintf("?linkExistingEntities=%t", spec.LinkExistingEntities),
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
			Status4xx: fmt.Sprintf(
				"cannot copy %s entities from workspace %s/%s",
				spec.EntityType,
				spec.SourceWorkspace.Namespace, spec.SourceWorkspace.Name,
			),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}
