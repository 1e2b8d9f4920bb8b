// Package emma is a typed client for the emma cloud-brokerage external API.
// One Client carries the HTTP transport and the shared bearer token source;
// per-resource-family clients are thin wrappers produced by the ClientFactory.
package emma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/emma-community/emma-portal-proxy/pkg/metrics"
	"github.com/emma-community/emma-portal-proxy/pkg/requestid"
)

const (
	// maxPages bounds the pagination loop against a vendor that never
	// reports a last page.
	maxPages = 32
	// pageSize is the page size requested from vendor list endpoints.
	pageSize = 100
)

// TokenSource yields the current bearer token for outbound vendor calls.
type TokenSource interface {
	Token() (string, error)
}

// APIError is a non-2xx answer from the vendor API. The vendor's status and
// message are carried unmodified so the HTTP layer can surface them.
type APIError struct {
	Resource   string
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("emma: %s request failed with status %d", e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("emma: %s request failed with status %d: %s", e.Resource, e.StatusCode, e.Message)
}

// Client is the shared transport for every resource-family client.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient returns a vendor API client rooted at baseURL. Calls carry a
// bearer token from tokens; a nil source produces unauthenticated calls,
// which only the token exchange endpoint accepts.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("emma: encoding %s request: %w", resource, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("emma: building %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set("x-request-id", id)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("emma: %s request: %w", resource, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("emma: %s request: %w", resource, err)
	}
	defer resp.Body.Close()

	metrics.IncreaseVendorRequestsTotalMetric(resource, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Resource: resource, StatusCode: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("emma: decoding %s response: %w", resource, err)
	}
	return nil
}

// pageEnvelope is the vendor's paged listing shape.
type pageEnvelope[T any] struct {
	Content    []T  `json:"content"`
	Number     int  `json:"number"`
	TotalPages int  `json:"totalPages"`
	Last       bool `json:"last"`
}

// getPaged follows the vendor's page numbering until it signals the last
// page, bounded by maxPages.
func getPaged[T any](ctx context.Context, c *Client, resource, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("size", strconv.Itoa(pageSize))

	var all []T
	for page := 0; page < maxPages; page++ {
		query.Set("page", strconv.Itoa(page))

		var envelope pageEnvelope[T]
		if err := c.do(ctx, resource, http.MethodGet, path, query, nil, &envelope); err != nil {
			return nil, err
		}

		all = append(all, envelope.Content...)
		if envelope.Last || len(envelope.Content) == 0 {
			break
		}
	}
	return all, nil
}
