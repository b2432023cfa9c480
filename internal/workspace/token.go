package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// TokenProvider yields a bearer token for the management plane.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, typically injected through the environment.
type StaticToken string

// Token returns the fixed token.
func (t StaticToken) Token(_ context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("empty access token")
	}
	return string(t), nil
}

// tokenExpirySlack refreshes CLI tokens a minute before they expire.
const tokenExpirySlack = time.Minute

// AzCLIToken acquires tokens by shelling out to the Azure CLI, the same way
// an operator would. Tokens are cached until shortly before expiry.
type AzCLIToken struct {
	mu      sync.Mutex
	cached  string
	expires time.Time
}

// cliTokenResponse is the shape of `az account get-access-token` output.
type cliTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresOn   string `json:"expiresOn"`
}

// Token returns a cached token or runs the CLI to fetch a fresh one.
func (t *AzCLIToken) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cached != "" && time.Now().Before(t.expires.Add(-tokenExpirySlack)) {
		return t.cached, nil
	}

	cmd := exec.CommandContext(ctx,
		"az", "account", "get-access-token",
		"--resource", ManagementHost,
		"--output", "json",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("az account get-access-token failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	var resp cliTokenResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return "", fmt.Errorf("failed to parse az token output: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("az returned an empty access token")
	}

	t.cached = resp.AccessToken
	t.expires = parseCLIExpiry(resp.ExpiresOn)
	return t.cached, nil
}

// parseCLIExpiry handles the CLI's local-time expiry format. An unparsable
// value disables caching rather than failing the call.
func parseCLIExpiry(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05.000000", "2006-01-02 15:04:05", time.RFC3339} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}
