package battlemetrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alphaBody = `{
  "data": {
    "type": "server",
    "id": "123",
    "attributes": {
      "name": "Alpha",
      "players": 10,
      "maxPlayers": 100,
      "status": "online",
      "details": {"time": "12:00", "map": "Procedural Map"}
    }
  }
}`

// seenRequest records what the test server received.
type seenRequest struct {
	mu     sync.Mutex
	path   string
	header http.Header
}

func (s *seenRequest) get() (string, http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.header
}

// newTestServer serves body with status for any path and records the last request.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.mu.Lock()
		seen.path = r.URL.Path
		seen.header = r.Header.Clone()
		seen.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestFetch_Success(t *testing.T) {
	srv, last := newTestServer(t, http.StatusOK, alphaBody)
	log := logger.NewBufferLogger()
	c := NewClient(WithBaseURL(srv.URL), WithLogger(log), WithUserAgent("bt-test"))

	server, err := c.Fetch(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, &Server{
		ID:         "123",
		Name:       "Alpha",
		Players:    10,
		MaxPlayers: 100,
		Status:     "online",
		Time:       "12:00",
	}, server)

	path, header := last.get()
	assert.Equal(t, "/servers/123", path)
	assert.Equal(t, "application/json", header.Get("Accept"))
	assert.Equal(t, "bt-test", header.Get("User-Agent"))
	assert.NotEmpty(t, header.Get(RequestIDHeader))
	assert.True(t, log.HasLevel("info"))
}

func TestFetch_MissingTimeDefaultsToNA(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK,
		`{"data":{"attributes":{"name":"Bravo","players":0}}}`)
	c := NewClient(WithBaseURL(srv.URL))

	server, err := c.Fetch(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, TimeUnavailable, server.Time)
	assert.Equal(t, 0, server.Players)
}

func TestFetch_NonStringTime(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK,
		`{"data":{"attributes":{"name":"Bravo","players":3,"details":{"time":1200}}}}`)
	c := NewClient(WithBaseURL(srv.URL))

	server, err := c.Fetch(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "1200", server.Time)
}

func TestFetch_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		contains string
	}{
		{"not found", http.StatusNotFound, `{"errors":[]}`, errors.ErrNotFound, "Invalid server ID: 999"},
		{"server error", http.StatusInternalServerError, "oops", errors.ErrHTTP, "500"},
		{"rate limited", http.StatusTooManyRequests, "", errors.ErrHTTP, "429"},
		{"not json", http.StatusOK, "<html>", errors.ErrMalformed, "Unreadable response"},
		{"no attributes", http.StatusOK, `{"data":{"id":"999"}}`, errors.ErrMalformed, "no data.attributes"},
		{"no data", http.StatusOK, `{}`, errors.ErrMalformed, "no data.attributes"},
		{"missing players", http.StatusOK, `{"data":{"attributes":{"name":"x"}}}`, errors.ErrMalformed, "missing name or players"},
		{"players wrong type", http.StatusOK, `{"data":{"attributes":{"name":"x","players":"ten"}}}`, errors.ErrMalformed, "Unreadable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			c := NewClient(WithBaseURL(srv.URL))

			server, err := c.Fetch(context.Background(), "999")
			require.Error(t, err)
			assert.Nil(t, server)
			assert.Equal(t, tt.wantCode, errors.Code(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close() // nothing listening any more

	c := NewClient(WithBaseURL(base))
	_, err := c.Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, alphaBody)
	c := NewClient(WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, "123")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
}

func TestServerURL(t *testing.T) {
	c := NewClient(WithBaseURL("http://example.com/api/"))
	assert.Equal(t, "http://example.com/api/servers/123", c.ServerURL("123"))
	assert.Equal(t, "http://example.com/api/servers/a%2Fb", c.ServerURL("a/b"))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(WithTimeout(0), WithBaseURL(""), WithLogger(nil))
	assert.Equal(t, DefaultTimeout, c.Timeout())
	assert.Equal(t, DefaultBaseURL+"/servers/1", c.ServerURL("1"))

	// Close is safe to call repeatedly
	c.Close()
	c.Close()
}
