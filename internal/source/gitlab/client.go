// Package gitlab implements source.Client against the GitLab user events API.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/footprint-tools/recommit/internal/log"
	"github.com/footprint-tools/recommit/internal/source"
)

// Tag is the source tag stored with every GitLab record.
const Tag = "gitlab"

const (
	// DefaultBaseURL is used when Config.BaseURL is empty.
	DefaultBaseURL = "https://gitlab.com"
	// DefaultRateLimit is the default number of requests per second.
	DefaultRateLimit = 5.0

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// HTTPClient is the subset of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings of a GitLab client.
type Config struct {
	BaseURL   string
	Username  string
	Token     string
	RateLimit float64 // requests per second; <= 0 disables limiting
}

// Client fetches user events from GitLab.
type Client struct {
	baseURL    string
	username   string
	token      string
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// NewClient creates a GitLab client. A nil httpClient uses an *http.Client
// with a 30 second timeout.
func NewClient(cfg Config, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Client{
		baseURL:    baseURL,
		username:   cfg.Username,
		token:      cfg.Token,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Tag implements source.Client.
func (c *Client) Tag() string {
	return Tag
}

// FetchPage implements source.Client.
func (c *Client) FetchPage(ctx context.Context, page, perPage int, filters source.Filters) ([]source.Event, error) {
	if err := source.ValidatePage(page, perPage); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("gitlab: wait for rate limiter: %w", err)
	}

	reqURL := c.eventsURL(page, perPage, filters)
	log.Debug("gitlab: GET %s", reqURL)

	var raw []gitlabEvent
	if err := c.doRequest(ctx, reqURL, &raw); err != nil {
		return nil, err
	}

	events := make([]source.Event, 0, len(raw))
	for _, ev := range raw {
		events = append(events, ev.toEvent())
	}

	log.Debug("gitlab: page %d returned %d events", page, len(events))
	return events, nil
}

func (c *Client) eventsURL(page, perPage int, filters source.Filters) string {
	params := url.Values{}
	if filters.Action != "" {
		params.Set("action", filters.Action)
	}
	if filters.TargetType != "" {
		params.Set("target_type", filters.TargetType)
	}
	if !filters.Before.IsZero() {
		params.Set("before", filters.Before.Format(source.DateLayout))
	}
	if !filters.After.IsZero() {
		params.Set("after", filters.After.Format(source.DateLayout))
	}
	if filters.Sort != "" {
		params.Set("sort", filters.Sort)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	return fmt.Sprintf("%s/api/v4/users/%s/events?%s",
		c.baseURL, url.PathEscape(c.username), params.Encode())
}

// doRequest performs an authenticated GET and decodes the JSON body into result.
func (c *Client) doRequest(ctx context.Context, reqURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &source.Error{Kind: source.ErrProvider, Source: Tag, Message: "create request", Err: err}
	}

	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("gitlab: request aborted: %w", ctxErr)
		}
		return &source.Error{Kind: source.ErrTransientNetwork, Source: Tag, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &source.Error{
			Kind:       source.KindForStatus(resp.StatusCode),
			Source:     Tag,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &source.Error{
			Kind:       source.ErrProvider,
			Source:     Tag,
			StatusCode: resp.StatusCode,
			Message:    "decode response",
			Err:        err,
		}
	}

	return nil
}

// gitlabEvent is the subset of the GitLab event payload recommit reads.
type gitlabEvent struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	ProjectID      *int64    `json:"project_id"`
	ActionName     string    `json:"action_name"`
	TargetType     *string   `json:"target_type"`
	TargetTitle    *string   `json:"target_title"`
	AuthorUsername string    `json:"author_username"`
	PushData       *struct {
		Ref         *string `json:"ref"`
		CommitCount int     `json:"commit_count"`
	} `json:"push_data"`
}

func (e gitlabEvent) toEvent() source.Event {
	ev := source.Event{
		ID:          strconv.FormatInt(e.ID, 10),
		CreatedAt:   e.CreatedAt.UTC(),
		Action:      e.ActionName,
		TargetType:  deref(e.TargetType),
		TargetTitle: deref(e.TargetTitle),
		Author:      e.AuthorUsername,
	}
	if e.ProjectID != nil {
		ev.ProjectID = *e.ProjectID
	}
	if e.PushData != nil {
		ev.Ref = deref(e.PushData.Ref)
		ev.CommitCount = e.PushData.CommitCount
	}
	return ev
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Verify Client implements source.Client
var _ source.Client = (*Client)(nil)
