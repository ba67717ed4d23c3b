// Package rest implements the service.Service interface against the
// household JSON API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
)

// ErrUnsupported is returned for operations the API does not offer on a
// collection, such as checking off a whole shopping list.
var ErrUnsupported = errors.New("rest: unsupported operation")

var _ service.Service = (*Client)(nil)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rest: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("rest: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client implements service.Service over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for baseURL. A non-empty token is sent as a bearer
// token on every request.
func New(ctx context.Context, baseURL, token string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	}
	return NewWithHTTPClient(baseURL, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("rest: invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("rest: invalid base url: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

type taskJSON struct {
	ID         string `json:"id,omitempty"`
	Text       string `json:"text"`
	Status     string `json:"status,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`
	DueTime    string `json:"dueTime,omitempty"`
	Scope      string `json:"scope,omitempty"`
	ScopeYear  *int   `json:"scopeYear,omitempty"`
	ScopeWeek  *int   `json:"scopeWeek,omitempty"`
	ScopeMonth *int   `json:"scopeMonth,omitempty"`
}

func (t taskJSON) toModel() model.Task {
	return model.Task{
		ID:         t.ID,
		Text:       t.Text,
		Status:     model.TaskStatus(t.Status),
		DueDate:    t.DueDate,
		DueTime:    t.DueTime,
		Scope:      model.Scope(t.Scope),
		ScopeYear:  t.ScopeYear,
		ScopeWeek:  t.ScopeWeek,
		ScopeMonth: t.ScopeMonth,
	}
}

func draftJSON(d model.TaskDraft) taskJSON {
	return taskJSON{
		Text:       d.Text,
		DueDate:    d.DueDate,
		DueTime:    d.DueTime,
		Scope:      string(d.Scope),
		ScopeYear:  d.ScopeYear,
		ScopeWeek:  d.ScopeWeek,
		ScopeMonth: d.ScopeMonth,
	}
}

type entryJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked,omitempty"`
}

type reorderJSON struct {
	EntryID   string `json:"entryId"`
	Direction string `json:"direction"`
	Steps     int    `json:"steps"`
}

// ListTasks implements service.TaskService.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var raw []taskJSON
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(raw))
	for _, t := range raw {
		out = append(out, t.toModel())
	}
	return out, nil
}

// AddTask implements service.TaskService.
func (c *Client) AddTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	var created taskJSON
	if err := c.do(ctx, http.MethodPost, "/todos", draftJSON(draft), &created); err != nil {
		return model.Task{}, err
	}
	return created.toModel(), nil
}

// UpdateTask implements service.TaskService.
func (c *Client) UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	var updated taskJSON
	if err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), draftJSON(draft), &updated); err != nil {
		return model.Task{}, err
	}
	return updated.toModel(), nil
}

// CompleteTask implements service.TaskService.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/todos/"+url.PathEscape(id)+"/complete", nil, nil)
}

// DeleteTask implements service.TaskService.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// ListCollection implements service.CollectionService.
func (c *Client) ListCollection(ctx context.Context, collectionID string) ([]model.Entry, error) {
	var raw []entryJSON
	if err := c.do(ctx, http.MethodGet, collectionPath(collectionID), nil, &raw); err != nil {
		return nil, err
	}
	out := make([]model.Entry, 0, len(raw))
	for _, e := range raw {
		out = append(out, model.Entry{ID: e.ID, Name: e.Name, Checked: e.Checked})
	}
	return out, nil
}

// ReorderEntry implements service.CollectionService.
func (c *Client) ReorderEntry(ctx context.Context, collectionID, entryID string, direction model.Direction, steps int) error {
	req := model.ReorderRequest{CollectionID: collectionID, EntryID: entryID, Direction: direction, Steps: steps}
	if err := req.Validate(); err != nil {
		return err
	}
	body := reorderJSON{EntryID: entryID, Direction: string(direction), Steps: steps}
	return c.do(ctx, http.MethodPost, collectionPath(collectionID)+"/reorder", body, nil)
}

// AddEntry implements service.CollectionService.
func (c *Client) AddEntry(ctx context.Context, collectionID, name string) (model.Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Entry{}, errors.New("rest: entry name is required")
	}
	var created entryJSON
	if err := c.do(ctx, http.MethodPost, collectionPath(collectionID), entryJSON{Name: name}, &created); err != nil {
		return model.Entry{}, err
	}
	return model.Entry{ID: created.ID, Name: created.Name, Checked: created.Checked}, nil
}

// ToggleEntry implements service.CollectionService. Only list items can be
// checked off.
func (c *Client) ToggleEntry(ctx context.Context, collectionID, entryID string) error {
	if collectionID == model.ListsCollection {
		return ErrUnsupported
	}
	return c.do(ctx, http.MethodPost, collectionPath(collectionID)+"/"+url.PathEscape(entryID)+"/toggle", nil, nil)
}

// RemoveEntry implements service.CollectionService.
func (c *Client) RemoveEntry(ctx context.Context, collectionID, entryID string) error {
	return c.do(ctx, http.MethodDelete, collectionPath(collectionID)+"/"+url.PathEscape(entryID), nil, nil)
}

// collectionPath maps a collection id onto its route: /lists for the lists
// themselves, /lists/{id}/items for the items of one list.
func collectionPath(collectionID string) string {
	if collectionID == model.ListsCollection {
		return "/lists"
	}
	return "/lists/" + url.PathEscape(collectionID) + "/items"
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("rest: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("rest: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("rest: %s %s: request timed out", method, path)
		}
		return fmt.Errorf("rest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
