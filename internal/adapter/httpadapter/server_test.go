package httpadapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/couchcryptid/sun-table-etl/internal/adapter/httpadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHealthzReturns200(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newTestServer(fmt.Errorf("not ready yet")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestParseTable_ReturnsNormalizedEntries(t *testing.T) {
	table, err := os.ReadFile("../../domain/testdata/usno_san_francisco_2012.txt")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tables", strings.NewReader(string(table)))
	newTestServer(nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Year    int `json:"year"`
		Entries []struct {
			Key     string `json:"key"`
			Date    string `json:"date"`
			Sunrise string `json:"sunrise"`
			Sunset  string `json:"sunset"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2012, body.Year)
	require.Len(t, body.Entries, 366)
	assert.Equal(t, "20120101", body.Entries[0].Key)

	// Mar 11 2012 is the first day of daylight time.
	mar11 := body.Entries[31+29+10]
	assert.Equal(t, "20120311", mar11.Key)
	assert.Equal(t, "2012-03-11", mar11.Date)
	assert.Equal(t, "0726", mar11.Sunrise)
	assert.Equal(t, "1914", mar11.Sunset)
}

func TestParseTable_RejectsWithErrorKind(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind string
	}{
		{name: "no year line", body: "just one line", kind: "format_error"},
		{name: "pre-2007", body: "Place\nRise and Set for the Sun for 2006\n", kind: "unsupported_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/tables", strings.NewReader(tt.body))
			newTestServer(nil).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body["kind"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestParseTable_RejectsOversizedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tables", strings.NewReader(strings.Repeat("x", 2<<20)))
	newTestServer(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
