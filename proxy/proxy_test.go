package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/creds"
)

func TestExecuteReadResult(t *testing.T) {
	var gotBody queryRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `[{"id": 1, "name": "Jane"}]`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "default-key")
	res, err := c.Execute(context.Background(), "SELECT * FROM students WHERE id = ?", []any{1})
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM students WHERE id = ?", gotBody.SQL)
	assert.Equal(t, []any{1.0}, gotBody.Params)
	assert.True(t, res.IsRead())
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Jane", res.Rows[0]["name"])
}

func TestExecuteWriteResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"rows_affected": 1, "insert_id": 42}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "default-key")
	res, err := c.Execute(context.Background(), "INSERT INTO students (name) VALUES (?)", []any{"Jane"})
	require.NoError(t, err)

	assert.False(t, res.IsRead())
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, int64(42), res.LastInsertID)
}

func TestExecuteNilParamsSentAsEmptyArray(t *testing.T) {
	var raw map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	_, err := c.Execute(context.Background(), "SELECT 1", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, raw["params"])
}

func TestExecuteEmbeddedErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "error", "message": "table missing"}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	_, err := c.Execute(context.Background(), "SELECT 1", nil)
	require.Error(t, err)

	var re *RemoteExecutionError
	require.True(t, errors.As(err, &re))
	assert.Contains(t, err.Error(), "table missing")
}

func TestExecuteFailureModes(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{{{not json`)
			},
		},
		{
			name: "malformed array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `[1, "two", {]`)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(tc.handler)
			defer ts.Close()

			c := NewClient(ts.URL, "k")
			_, err := c.Execute(context.Background(), "SELECT 1", nil)
			require.Error(t, err)

			var re *RemoteExecutionError
			assert.True(t, errors.As(err, &re))
		})
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k")
	_, err := c.Execute(context.Background(), "SELECT 1", nil)
	require.Error(t, err)

	var re *RemoteExecutionError
	assert.True(t, errors.As(err, &re))
}

func TestCredentialDefaultAndOverride(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("X-API-Key"))
		mu.Unlock()
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "default-key")

	_, err := c.Execute(context.Background(), "SELECT 1", nil)
	require.NoError(t, err)

	ctx := creds.WithKey(context.Background(), "caller-key")
	_, err = c.Execute(ctx, "SELECT 1", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"default-key", "caller-key"}, seen)
}

// Two concurrent requests carrying different credentials must each reach the
// relay with their own key, never the other's.
func TestCredentialIsolationUnderConcurrency(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"key": %q}]`, r.Header.Get("X-API-Key"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "default-key")

	const iterations = 50
	var wg sync.WaitGroup
	for _, key := range []string{"key-alpha", "key-beta"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			ctx := creds.WithKey(context.Background(), key)
			for i := 0; i < iterations; i++ {
				res, err := c.Execute(ctx, "SELECT 1", nil)
				assert.NoError(t, err)
				assert.Equal(t, key, res.Rows[0]["key"])
			}
		}(key)
	}
	wg.Wait()
}
