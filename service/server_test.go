package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openabi/calldata-guesser/pkg/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.HistoryDbPath = filepath.Join(t.TempDir(), "history")
	cfg.CacheSizeMB = 1
	srv, err := NewServer(cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func doGuess(t *testing.T, srv *Server, calldataHex string) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"calldata":"%s"}`, calldataHex)
	req := httptest.NewRequest(http.MethodPost, "/v1/guess", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHandleGuessAcceptsKnownShape(t *testing.T) {
	srv := newTestServer(t)

	// selector aaaaaaaa, single uint256 argument encoding 123.
	calldata := "aaaaaaaa000000000000000000000000000000000000000000000000000000000000007b"

	rec := doGuess(t, srv, calldata)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "uint256")

	// second call should be served from the hot cache.
	rec2 := doGuess(t, srv, calldata)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Contains(t, rec2.Body.String(), `"cached":true`)
}

func TestHandleGuessRejectsMalformedHex(t *testing.T) {
	srv := newTestServer(t)

	rec := doGuess(t, srv, "not-hex")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGuessRejectsShortCalldata(t *testing.T) {
	srv := newTestServer(t)

	rec := doGuess(t, srv, "aabb")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
