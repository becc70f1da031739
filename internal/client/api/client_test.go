package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/common"
	"github.com/slabvault/slabvault/internal/logging"
)

// fakeCreds records credential operations for assertions.
type fakeCreds struct {
	token        string
	tokenRemoved bool
	userRemoved  bool
}

func (f *fakeCreds) Token(context.Context) string { return f.token }
func (f *fakeCreds) RemoveToken(context.Context)  { f.tokenRemoved = true }
func (f *fakeCreds) RemoveUser(context.Context)   { f.userRemoved = true }

func newTestClient(t *testing.T, handler http.HandlerFunc, creds *fakeCreds) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return NewClient(srv.URL, 5*time.Second, creds, log)
}

func TestCall_AttachesHeadersAndDecodes(t *testing.T) {
	creds := &fakeCreds{token: "jwt-abc"}
	var gotAuth, gotCT string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]any{"submissions": []map[string]any{{"_id": "s1"}}})
	}, creds)

	subs, err := c.Submissions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, models.FlexID("s1"), subs[0].ID)
	require.Equal(t, "Bearer jwt-abc", gotAuth)
	require.Equal(t, "application/json", gotCT)
}

func TestSubmissions_TargetsAPIPathOnce(t *testing.T) {
	// The configured base URL is a bare origin; the /api prefix lives in
	// the endpoint paths and must not end up doubled.
	var gotPath string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"submissions": []}`))
	}, &fakeCreds{})

	_, err := c.Submissions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/api/submissions", gotPath)
}

func TestCall_NoTokenNoAuthHeader(t *testing.T) {
	creds := &fakeCreds{}
	var gotAuth string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, creds)

	require.NoError(t, c.Call(context.Background(), http.MethodGet, "/api/submissions", nil, nil))
	require.Empty(t, gotAuth)
}

func TestCall_ServerErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"cardCount mismatch"}`))
	}, &fakeCreds{})

	err := c.Call(context.Background(), http.MethodPost, "/api/submissions", map[string]int{"cardCount": 2}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "cardCount mismatch", apiErr.Message)
}

func TestCall_FallbackMessageWhenBodyEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, &fakeCreds{})

	err := c.Call(context.Background(), http.MethodGet, "/api/submissions", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "HTTP 502", apiErr.Message)
}

func TestCall_401ClearsCachedCredentials(t *testing.T) {
	creds := &fakeCreds{token: "stale"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid token"}`))
	}, creds)

	err := c.Call(context.Background(), http.MethodGet, "/api/submissions", nil, nil)
	require.Error(t, err)
	require.True(t, creds.tokenRemoved)
	require.True(t, creds.userRemoved)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCall_TransportFailureWrapsUnavailable(t *testing.T) {
	creds := &fakeCreds{}
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	// Nothing listens on this address.
	c := NewClient("http://127.0.0.1:1", time.Second, creds, log)

	err := c.Call(context.Background(), http.MethodGet, "/api/submissions", nil, nil)
	require.ErrorIs(t, err, common.ErrUnavailable)
	require.False(t, creds.tokenRemoved, "transport failures must not clear credentials")
}

func TestCall_ContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, &fakeCreds{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.Call(ctx, http.MethodGet, "/api/submissions", nil, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAdminSubmissions_QueryParams(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"submissions": []any{},
			"pagination":  map[string]int{"page": 2, "pageSize": 50, "total": 120, "totalPages": 3},
		})
	}, &fakeCreds{token: "jwt-admin"})

	page, err := c.AdminSubmissions(context.Background(), 2, models.StatusGrading)
	require.NoError(t, err)
	require.Equal(t, 2, page.Pagination.Page)
	require.Equal(t, 3, page.Pagination.TotalPages)
	require.Contains(t, gotQuery, "page=2")
	require.Contains(t, gotQuery, "status=grading")
}

func TestUpdateSubmissionStatus_RejectsUnknownStatus(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, &fakeCreds{})

	_, err := c.UpdateSubmissionStatus(context.Background(), "s1", "teleported")
	require.Error(t, err)
	require.False(t, called, "invalid status must be rejected before the network call")

	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestLogin_ReturnsUserAndToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		require.Equal(t, "a@b.c", body["email"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]string{"_id": "u1", "email": "a@b.c", "role": "admin"},
			"token": "jwt-new",
		})
	}, &fakeCreds{})

	resp, err := c.Login(context.Background(), "a@b.c", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "jwt-new", resp.Token)
	require.True(t, resp.User.IsAdmin())
}
