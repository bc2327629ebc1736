package gitlab

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/recommit/internal/source"
)

// mockHTTPClient is a test double for HTTPClient.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
	calls  int
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.doFunc(req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func newTestClient(doFunc func(*http.Request) (*http.Response, error)) (*Client, *mockHTTPClient) {
	mock := &mockHTTPClient{doFunc: doFunc}
	c := NewClient(Config{
		BaseURL:  "https://gitlab.example.com/",
		Username: "jdoe",
		Token:    "test-token",
	}, mock)
	return c, mock
}

func TestFetchPage_RequestShape(t *testing.T) {
	var got *http.Request
	c, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		got = req
		return respond(http.StatusOK, `[]`)(req)
	})

	_, err := c.FetchPage(context.Background(), 2, 50, source.Filters{})
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Equal(t, http.MethodGet, got.Method)
	require.Equal(t, "gitlab.example.com", got.URL.Host)
	require.Equal(t, "/api/v4/users/jdoe/events", got.URL.Path)
	require.Equal(t, "test-token", got.Header.Get("PRIVATE-TOKEN"))
	require.Equal(t, "application/json", got.Header.Get("Accept"))

	q := got.URL.Query()
	require.Equal(t, "2", q.Get("page"))
	require.Equal(t, "50", q.Get("per_page"))
	for _, absent := range []string{"action", "target_type", "before", "after", "sort"} {
		_, ok := q[absent]
		require.False(t, ok, "%s should not be sent", absent)
	}
}

func TestFetchPage_Filters(t *testing.T) {
	var got *http.Request
	c, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		got = req
		return respond(http.StatusOK, `[]`)(req)
	})

	_, err := c.FetchPage(context.Background(), 1, 20, source.Filters{
		Action:     "pushed",
		TargetType: "issue",
		Before:     time.Date(2024, 2, 1, 15, 0, 0, 0, time.UTC),
		After:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Sort:       "desc",
	})
	require.NoError(t, err)

	q := got.URL.Query()
	require.Equal(t, "pushed", q.Get("action"))
	require.Equal(t, "issue", q.Get("target_type"))
	require.Equal(t, "2024-02-01", q.Get("before"))
	require.Equal(t, "2024-01-01", q.Get("after"))
	require.Equal(t, "desc", q.Get("sort"))
}

func TestFetchPage_Decode(t *testing.T) {
	body := `[
		{
			"id": 1001,
			"project_id": 7,
			"action_name": "pushed to",
			"target_type": null,
			"target_title": null,
			"created_at": "2024-01-01T12:00:00.000+02:00",
			"author_username": "jdoe",
			"push_data": {"commit_count": 3, "ref": "main"}
		},
		{
			"id": 1000,
			"project_id": null,
			"action_name": "commented on",
			"target_type": "Note",
			"target_title": "Fix build",
			"created_at": "2024-01-01T09:30:00.000Z",
			"author_username": "jdoe"
		}
	]`
	c, _ := newTestClient(respond(http.StatusOK, body))

	events, err := c.FetchPage(context.Background(), 1, 50, source.Filters{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	require.Equal(t, "1001", first.ID)
	require.Equal(t, int64(7), first.ProjectID)
	require.Equal(t, "pushed to", first.Action)
	require.Equal(t, "main", first.Ref)
	require.Equal(t, 3, first.CommitCount)
	require.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), first.CreatedAt)
	require.Equal(t, time.UTC, first.CreatedAt.Location())

	second := events[1]
	require.Equal(t, "1000", second.ID)
	require.Equal(t, int64(0), second.ProjectID)
	require.Equal(t, "Note", second.TargetType)
	require.Equal(t, "Fix build", second.TargetTitle)
	require.Empty(t, second.Ref)
}

func TestFetchPage_EmptyPage(t *testing.T) {
	c, _ := newTestClient(respond(http.StatusOK, `[]`))

	events, err := c.FetchPage(context.Background(), 9, 50, source.Filters{})
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestFetchPage_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, source.ErrAuthentication},
		{"forbidden", http.StatusForbidden, source.ErrAuthentication},
		{"too many requests", http.StatusTooManyRequests, source.ErrTransientNetwork},
		{"server error", http.StatusServiceUnavailable, source.ErrTransientNetwork},
		{"not found", http.StatusNotFound, source.ErrProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(respond(tt.status, `{"message":"nope"}`))

			events, err := c.FetchPage(context.Background(), 1, 50, source.Filters{})
			require.Nil(t, events)
			require.ErrorIs(t, err, tt.want)

			var srcErr *source.Error
			require.ErrorAs(t, err, &srcErr)
			require.Equal(t, tt.status, srcErr.StatusCode)
			require.Equal(t, Tag, srcErr.Source)
			require.Contains(t, srcErr.Message, "nope")
		})
	}
}

func TestFetchPage_TransportError(t *testing.T) {
	c, _ := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	_, err := c.FetchPage(context.Background(), 1, 50, source.Filters{})
	require.ErrorIs(t, err, source.ErrTransientNetwork)
}

func TestFetchPage_UndecodableBody(t *testing.T) {
	c, _ := newTestClient(respond(http.StatusOK, `<html>maintenance</html>`))

	_, err := c.FetchPage(context.Background(), 1, 50, source.Filters{})
	require.ErrorIs(t, err, source.ErrProvider)
}

func TestFetchPage_InvalidPageSendsNothing(t *testing.T) {
	c, mock := newTestClient(respond(http.StatusOK, `[]`))

	_, err := c.FetchPage(context.Background(), 0, 50, source.Filters{})
	require.ErrorIs(t, err, source.ErrInvalidPage)

	_, err = c.FetchPage(context.Background(), 1, 0, source.Filters{})
	require.ErrorIs(t, err, source.ErrInvalidPage)

	require.Equal(t, 0, mock.calls)
}

func TestFetchPage_CanceledContext(t *testing.T) {
	c, mock := newTestClient(respond(http.StatusOK, `[]`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchPage(ctx, 1, 50, source.Filters{})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, source.IsSourceError(err))
	require.Equal(t, 0, mock.calls)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{Username: "jdoe"}, nil)
	require.Equal(t, DefaultBaseURL, c.baseURL)
	require.NotNil(t, c.httpClient)
	require.Equal(t, Tag, c.Tag())
}
