package rest

import (
	"context"
	"fmt"
	"net/http"
)

func (c *client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("health"), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return unmarshalTextResponse(
		resp,
		MessageFor{
			Status4xx: "health endpoint is not available",
			Status5xx: fmt.Sprintf("the platform is unhealthy (status code = %d)", resp.StatusCode),
		},
	)
}
