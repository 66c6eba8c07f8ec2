package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nchandra/callscope/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.APIConfig{BaseURL: srv.URL, Key: "test-key", TimeoutSeconds: 2})
}

func TestFetchAll_BareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/call-logs", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.URL.Query().Get("_t"), "cache buster missing")
		w.Write([]byte(`[{"id":1,"call_datetime":"2025-03-14T10:00:00","staff_name":"Priya","sop_score":"8/10"}]`))
	})

	logs, err := c.FetchAll(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "1", logs[0].ID)
	assert.Equal(t, "Priya", logs[0].StaffName)
}

func TestFetchAll_DataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"a","call_datetime":"2025-03-14","staff_name":"Arun","sop_score":7}]}`))
	})

	logs, err := c.FetchAll(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "a", logs[0].ID)
}

func TestFetchAll_UnexpectedShapeYieldsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records": [], "count": 0}`))
	})

	logs, err := c.FetchAll(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestFetchAll_QueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025-03-14", q.Get("date"))
		assert.Equal(t, "priya", q.Get("staff_name"))
		assert.Equal(t, "8", q.Get("sop_score"))
		w.Write([]byte(`[]`))
	})

	_, err := c.FetchAll(context.Background(), Query{Date: "2025-03-14", StaffName: "priya", SopScore: "8"})
	require.NoError(t, err)
}

func TestFetchAll_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.FetchAll(context.Background(), Query{})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindStatus, loadErr.Kind)
	assert.Contains(t, loadErr.Message, "403")
}

func TestFetchAll_ParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [truncated`))
	})

	_, err := c.FetchAll(context.Background(), Query{})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindParse, loadErr.Kind)
}

func TestFetchAll_TransportError(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 1})

	_, err := c.FetchAll(context.Background(), Query{})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindTransport, loadErr.Kind)
	assert.True(t, errors.Is(err, loadErr.Err) || loadErr.Err != nil)
}

func TestSnapshot_DigestChangesWithPayload(t *testing.T) {
	payload := []byte(`[{"id":1,"call_datetime":"2025-03-14","staff_name":"Priya","sop_score":"8/10"}]`)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	})

	_, d1, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	_, d2, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, d1, d2, "digest must be stable for identical payloads")

	payload = []byte(`[{"id":2,"call_datetime":"2025-03-15","staff_name":"Arun","sop_score":"6/10"}]`)
	_, d3, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3, "digest must change when payload changes")
}
