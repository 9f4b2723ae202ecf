package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tesserabio/tessera/pkg/api/types/submissions"
)

func (c *client) ListSubmissions(ctx context.Context, project, workspace string) ([]submissions.Summary, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("workspaces", project, workspace, "submissions"), nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	summaries := make([]submissions.Summary, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &summaries,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list submissions of workspace %s/%s", project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *client) CreateSubmission(
	ctx context.Context, project, workspace string, spec submissions.Request,
) (submissions.Created, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return submissions.Created{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("workspaces", project, workspace, "submissions"),
		bytes.NewReader(body),
	)
	if err != nil {
		return submissions.Created{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return submissions.Created{}, err
	}
	defer resp.Body.Close()

	var created submissions.Created
	if err := unmarshalJsonResponse(
		resp, &created,
		MessageFor{
			Status4xx: fmt.Sprintf(
				"cannot submit %s/%s on %s:%s in workspace %s/%s",
				spec.MethodConfigurationNamespace, spec.MethodConfigurationName,
				spec.EntityType, spec.EntityName,
				project, workspace,
			),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return submissions.Created{}, err
	}
	return created, nil
}

func (c *client) GetSubmission(
	ctx context.Context, project, workspace, submissionId string,
) (submissions.Detail, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("workspaces", project, workspace, "submissions", submissionId), nil,
	)
	if err != nil {
		return submissions.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return submissions.Detail{}, err
	}
	defer resp.Body.Close()

	var detail submissions.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("submission %s is not found in workspace %s/%s", submissionId, project, workspace),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return submissions.Detail{}, err
	}
	return detail, nil
}

func (c *client) AbortSubmission(ctx context.Context, project, workspace, submissionId string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete,
		c.apipath("workspaces", project, workspace, "submissions", submissionId), nil,
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
			Status4xx: fmt.Sprintf("submission %s cannot be aborted", submissionId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}
