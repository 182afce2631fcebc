package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/procmap/internal/model"
)

// HTTPClient implements ProcessMapClient using the procmap HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Areas ---

func (c *HTTPClient) CreateArea(ctx context.Context, req *CreateAreaRequest) (*model.Area, error) {
	var area model.Area
	if err := c.doJSON(ctx, http.MethodPost, "/v1/areas", req, &area); err != nil {
		return nil, err
	}
	return &area, nil
}

func (c *HTTPClient) GetArea(ctx context.Context, id string) (*model.Area, error) {
	var area model.Area
	if err := c.doJSON(ctx, http.MethodGet, "/v1/areas/"+url.PathEscape(id), nil, &area); err != nil {
		return nil, err
	}
	return &area, nil
}

func (c *HTTPClient) ListAreas(ctx context.Context) (*ListAreasResponse, error) {
	var resp ListAreasResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/areas", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateArea(ctx context.Context, id string, req *UpdateAreaRequest) (*model.Area, error) {
	var area model.Area
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/areas/"+url.PathEscape(id), req, &area); err != nil {
		return nil, err
	}
	return &area, nil
}

func (c *HTTPClient) DeleteArea(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/areas/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ReorderAreas(ctx context.Context, orderedIDs []string) error {
	body := map[string][]string{"orderedIds": orderedIDs}
	return c.doJSON(ctx, http.MethodPatch, "/v1/areas/reorder", body, nil)
}

// --- Processes ---

func (c *HTTPClient) CreateProcess(ctx context.Context, req *CreateProcessRequest) (*model.Process, error) {
	var p model.Process
	if err := c.doJSON(ctx, http.MethodPost, "/v1/processes", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetProcess(ctx context.Context, id string) (*model.Process, error) {
	var p model.Process
	if err := c.doJSON(ctx, http.MethodGet, "/v1/processes/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProcess(ctx context.Context, id string, req *UpdateProcessRequest) (*model.Process, error) {
	var p model.Process
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/processes/"+url.PathEscape(id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) MoveProcess(ctx context.Context, id string, parentID *string) (*model.Process, error) {
	// parentId is always present in the body; null promotes to root.
	body := map[string]*string{"parentId": parentID}
	var p model.Process
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/processes/"+url.PathEscape(id)+"/move", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProcess(ctx context.Context, id string) ([]string, error) {
	var resp struct {
		DeletedIDs []string `json:"deletedIds"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/v1/processes/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.DeletedIDs, nil
}

// --- Tree views ---

func (c *HTTPClient) GetTree(ctx context.Context, query string) ([]*model.ProcessNode, error) {
	path := "/v1/processes/tree"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var resp struct {
		Tree []*model.ProcessNode `json:"tree"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tree, nil
}

func (c *HTTPClient) Breadcrumb(ctx context.Context, id string) ([]*model.Process, error) {
	var resp struct {
		Breadcrumb []*model.Process `json:"breadcrumb"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/processes/"+url.PathEscape(id)+"/breadcrumb", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Breadcrumb, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
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
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
