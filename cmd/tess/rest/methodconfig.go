package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tesserabio/tessera/pkg/api/types/configs"
)

func (c *client) ListMethodConfigs(ctx context.Context, project, workspace string) ([]configs.Summary, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("workspaces", project, workspace, "methodconfigs"), nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	summaries := make([]configs.Summary, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &summaries,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list method configurations of workspace %s/%s", project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *client) GetMethodConfig(
	ctx context.Context, project, workspace, namespace, name string,
) (configs.Detail, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("workspaces", project, workspace, "method_configs", namespace, name), nil,
	)
	if err != nil {
		return configs.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return configs.Detail{}, err
	}
	defer resp.Body.Close()

	var detail configs.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("method configuration %s/%s is not found in workspace %s/%s", namespace, name, project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return configs.Detail{}, err
	}
	return detail, nil
}

func (c *client) PutMethodConfig(
	ctx context.Context, project, workspace, namespace, name string, config configs.Detail,
) (configs.Detail, error) {
	body, err := json.Marshal(config)
	if err != nil {
		return configs.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut,
		c.apipath("workspaces", project, workspace, "method_configs", namespace, name),
		bytes.NewReader(body),
	)
	if err != nil {
		return configs.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return configs.Detail{}, err
	}
	defer resp.Body.Close()

	var stored configs.Detail
	if err := unmarshalJsonResponse(
		resp, &stored,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot store method configuration %s/%s in workspace %s/%s", namespace, name, project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return configs.Detail{}, err
	}
	return stored, nil
}
