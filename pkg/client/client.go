// Package client is a JSON client for the permissions API. It is used by
// the terminal console and the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sevy33/permissions-in-go/pkg/export"
	"github.com/sevy33/permissions-in-go/pkg/model"
)

// ErrNotFound is wrapped by APIError for 404 answers
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to a permctl server
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

// WithToken sends an admin bearer token on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &errBody) != nil || errBody.Error == "" {
			errBody.Error = strings.TrimSpace(string(data))
		}
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// Health returns nil when the server and its database are up
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, name string, description *string) (*model.Project, error) {
	var project model.Project
	body := map[string]interface{}{"name": name, "description": description}
	if err := c.do(ctx, http.MethodPost, "/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/projects", id), nil, nil)
}

func (c *Client) CreatePermission(ctx context.Context, projectID int64, key string, description *string) (*model.Permission, error) {
	var permission model.Permission
	body := map[string]interface{}{"projectId": projectID, "key": key, "description": description}
	if err := c.do(ctx, http.MethodPost, "/permissions", body, &permission); err != nil {
		return nil, err
	}
	return &permission, nil
}

func (c *Client) UpdatePermission(ctx context.Context, id int64, key string, description *string) (*model.Permission, error) {
	var permission model.Permission
	body := map[string]interface{}{"key": key, "description": description}
	if err := c.do(ctx, http.MethodPut, idPath("/permissions", id), body, &permission); err != nil {
		return nil, err
	}
	return &permission, nil
}

func (c *Client) DeletePermission(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/permissions", id), nil, nil)
}

func (c *Client) CreateGroup(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error) {
	var group model.PermissionGroup
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, idPath("/projects", projectID)+"/groups", body, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) SetGroupPermission(ctx context.Context, groupID, permissionID int64, enabled bool) error {
	body := map[string]interface{}{"permissionId": permissionID, "enabled": enabled}
	return c.do(ctx, http.MethodPost, idPath("/groups", groupID)+"/permissions", body, nil)
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/groups", id), nil, nil)
}

func (c *Client) ExportAll(ctx context.Context) ([]export.Project, error) {
	var projects []export.Project
	if err := c.do(ctx, http.MethodGet, "/export/all", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ExportProject fetches one project by API key. Unknown keys return an
// error wrapping ErrNotFound.
func (c *Client) ExportProject(ctx context.Context, apiKey string) (*export.Project, error) {
	var project export.Project
	if err := c.do(ctx, http.MethodGet, "/export/project/"+url.PathEscape(apiKey), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}
