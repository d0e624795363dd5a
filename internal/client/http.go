package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// HTTPClient implements IssueClient using the issue HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	token      string
	actor      string
	httpClient *http.Client
}

var _ IssueClient = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithActor sets the name recorded on events for mutations.
func WithActor(actor string) Option {
	return func(c *HTTPClient) { c.actor = actor }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func issuePath(id string) string {
	return "/api/issues/" + url.PathEscape(id)
}

func (c *HTTPClient) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodPost, "/api/issues", req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodGet, issuePath(id), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (req *ListIssuesRequest) values() url.Values {
	q := url.Values{}
	if req == nil {
		return q
	}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if req.Assignee != "" {
		q.Set("assignee", req.Assignee)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	return q
}

// ListIssues returns every matching issue in creation order.
func (c *HTTPClient) ListIssues(ctx context.Context, req *ListIssuesRequest) ([]*model.Issue, error) {
	path := "/api/issues"
	if q := req.values(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var issues []*model.Issue
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *HTTPClient) ListIssuesPage(ctx context.Context, req *ListIssuesRequest, page, pageSize int) (*model.IssuePage, error) {
	q := req.values()
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	path := "/api/issues/page"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var resp model.IssuePage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateIssue(ctx context.Context, id string, req *UpdateIssueRequest) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodPatch, issuePath(id), req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateStatus sends PATCH /api/issues/{id} with only the status field.
func (c *HTTPClient) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Issue, error) {
	s := string(status)
	return c.UpdateIssue(ctx, id, &UpdateIssueRequest{Status: &s})
}

func (c *HTTPClient) DeleteIssue(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, issuePath(id), nil, nil)
}

func (c *HTTPClient) Summary(ctx context.Context) (*model.Summary, error) {
	var s model.Summary
	if err := c.doJSON(ctx, http.MethodGet, "/api/issues/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) GetEvents(ctx context.Context, issueID string) ([]*model.Event, error) {
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, issuePath(issueID)+"/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.actor != "" && method != http.MethodGet {
		req.Header.Set("X-Issueboard-Actor", c.actor)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
