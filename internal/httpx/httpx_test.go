package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_DefaultHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stocklookup-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "kept", r.Header.Get("X-Caller"))
		assert.Equal(t, "yes", r.Header.Get("X-Default"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(time.Second, "stocklookup-test")
	c.Headers = map[string]string{"X-Default": "yes", "X-Caller": "overwritten"}

	req, err := http.NewRequestWithContext(testContext(t), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("X-Caller", "kept")

	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestClient_Do_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(50*time.Millisecond, "")
	req, err := http.NewRequestWithContext(testContext(t), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	_, err = c.Do(req)
	require.Error(t, err)
}

func TestNew_DefaultTimeout(t *testing.T) {
	t.Parallel()

	c := New(0, "")
	require.Equal(t, DefaultTimeout, c.HTTP.Timeout)
}
