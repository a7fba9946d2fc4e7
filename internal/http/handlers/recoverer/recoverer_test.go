package recoverer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"waitlist/internal/core/domain/logging"

	"github.com/stretchr/testify/require"
)

func TestRecoverRendersInternalError(t *testing.T) {
	require := require.New(t)
	log := logging.NewFakeLogger()
	h := Recover(log)(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/api/subscribe", nil))

	require.Equal(http.StatusInternalServerError, rw.Code)
	body := map[string]string{}
	require.NoError(json.Unmarshal(rw.Body.Bytes(), &body))
	require.Equal(map[string]string{
		"error":   "Internal Server Error",
		"details": "Check terminal for more information.",
	}, body)

	records := log.Records(logging.ERROR)
	require.Len(records, 1)
	value, ok := records[0].Value("panic")
	require.True(ok)
	require.Equal("boom", value)
}

func TestRecoverPassesThrough(t *testing.T) {
	require := require.New(t)
	log := logging.NewFakeLogger()
	h := Recover(log)(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusTeapot)
	}))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(http.StatusTeapot, rw.Code)
	require.Empty(log.Logged)
}
