// Package workspace is the management-plane REST client for the Azure ML
// workspace. It covers only what driftmon needs: upserting assets, signals
// and schedules, listing schedules, and probing api-versions.
package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mlopshq/driftmon/internal/contract"
	"github.com/mlopshq/driftmon/schema"
)

// ManagementHost is the ARM endpoint all workspace calls go through.
const ManagementHost = "https://management.azure.com"

// Client talks to one workspace. It is safe for concurrent use; all state is
// immutable after construction.
type Client struct {
	httpclient *http.Client
	baseURL    string
	apiVersion string
	tokens     TokenProvider
	trace      io.Writer // nil disables HTTP tracing
}

// NewClient builds a client for the workspace named in cfg. The trace writer
// receives one line per request/response when HTTP debugging is enabled; pass
// nil to disable.
func NewClient(cfg *contract.Config, tokens TokenProvider, trace io.Writer) *Client {
	return &Client{
		httpclient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    ManagementHost + schema.WorkspaceResourceID(cfg.SubscriptionID, cfg.ResourceGroup, cfg.Workspace),
		apiVersion: cfg.APIVersion,
		tokens:     tokens,
		trace:      trace,
	}
}

// apipath joins endpoint segments under the workspace resource id.
func (c *Client) apipath(segments ...string) string {
	return c.baseURL + "/" + strings.Join(segments, "/")
}

// newRequest assembles an authenticated JSON request against the workspace.
func (c *Client) newRequest(ctx context.Context, method, rawURL, apiVersion string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("api-version", apiVersion)
	req.URL.RawQuery = q.Encode()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire access token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doJSON issues the request and decodes a 2xx response into out. Non-2xx
// responses become errors carrying the status code and the server message.
func (c *Client) doJSON(ctx context.Context, method string, segments []string, body, out any) error {
	req, err := c.newRequest(ctx, method, c.apipath(segments...), c.apiVersion, body)
	if err != nil {
		return err
	}

	c.tracef("%s %s", method, req.URL)
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, strings.Join(segments, "/"), err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.tracef("%s %s -> %d", method, req.URL, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp, strings.Join(segments, "/"))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", strings.Join(segments, "/"), err)
	}
	return nil
}

// tracef writes one formatted line to the trace writer, when tracing is on.
func (c *Client) tracef(format string, args ...any) {
	if c.trace == nil {
		return
	}
	_, _ = fmt.Fprintf(c.trace, format+"\n", args...)
}

// newStatusError turns a non-2xx response into an error with the server's
// message attached when one can be extracted.
func newStatusError(resp *http.Response, endpoint string) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if readErr != nil {
		return fmt.Errorf("%s returned status %d (unreadable body: %v)", endpoint, resp.StatusCode, readErr)
	}
	if msg := parseServerMessage(body); msg != "" {
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, msg)
	}
	return fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
}

// parseServerMessage extracts the message from an ARM error envelope, or
// returns "" when the body is not one.
func parseServerMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error.Code == "" && envelope.Error.Message == "" {
		return ""
	}
	return strings.TrimSpace(envelope.Error.Code + " " + envelope.Error.Message)
}
