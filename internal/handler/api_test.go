package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msomdec/product-catalog/internal/handler"
	"github.com/stretchr/testify/require"
)

// newTestServer starts the full router over a fresh SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	auth, products, db := newTestServices(t)
	srv := httptest.NewServer(handler.NewRouter(auth, products, db, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

type apiResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

func (r apiResponse) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, dst), "body: %s", r.Body)
}

func doRequest(t *testing.T, method, url string, body any, headers map[string]string) apiResponse {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return apiResponse{Status: resp.StatusCode, Header: resp.Header, Body: raw}
}
