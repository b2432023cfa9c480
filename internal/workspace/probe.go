package workspace

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mlopshq/driftmon/schema"
)

// probeBodyLimit caps how much of a probe response body is retained.
const probeBodyLimit = 64 * 1024

// Probe issues a raw GET against a workspace child endpoint under a specific
// api-version. Non-2xx statuses are results, not errors; only transport
// failures surface as errors.
func (c *Client) Probe(ctx context.Context, apiVersion, endpoint string) (schema.ProbeResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath(endpoint), apiVersion, nil)
	if err != nil {
		return schema.ProbeResult{}, err
	}

	c.tracef("GET %s", req.URL)
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return schema.ProbeResult{}, fmt.Errorf("probe %s (%s) failed: %w", endpoint, apiVersion, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.tracef("GET %s -> %d", req.URL, resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, probeBodyLimit))
	if err != nil {
		return schema.ProbeResult{}, fmt.Errorf("probe %s (%s): failed to read body: %w", endpoint, apiVersion, err)
	}

	return schema.ProbeResult{
		APIVersion: apiVersion,
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		URL:        req.URL.String(),
		Body:       string(body),
	}, nil
}
