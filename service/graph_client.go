// file: service/graph_client.go

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Upper bound on how much of a provider error body is kept.
const maxErrorBody = 64 << 10

// ProviderError carries a non-success response from a downstream service.
// Body is the provider's response text, unmodified.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
}

func newProviderError(resp *http.Response) *ProviderError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &ProviderError{Status: resp.StatusCode, Body: string(body)}
}

// GraphClient issues Microsoft Graph calls on behalf of a signed-in user.
type GraphClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     IAccessTokenSource
}

func NewGraphClient(baseURL string, httpClient *http.Client, tokens IAccessTokenSource) *GraphClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GraphClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// Do sends one request to path with the user's bearer token attached.
// The caller owns the response body.
func (g *GraphClient) Do(ctx context.Context, email, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	accessToken, err := g.tokens.AccessToken(ctx, email)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	client := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, g.httpClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
	)
	client.Timeout = g.httpClient.Timeout

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request failed: %w", err)
	}
	return resp, nil
}
