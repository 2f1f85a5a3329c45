package shared_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atr004/StudentHub/internal/api/shared"
)

// captureWarnLogs routes the default logger into a buffer that only
// records WARN and above for the duration of the test.
func captureWarnLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/listings/unknown", nil)

	shared.RespondWithError(w, r, http.StatusNotFound, "Listing not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Listing not found", body.Message)
}

func TestRespondWithErrorAndLogLevels(t *testing.T) {
	t.Run("plain 4xx stays below WARN", func(t *testing.T) {
		buf := captureWarnLogs(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)

		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format",
			errors.New("unexpected EOF"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, buf.String())
	})

	t.Run("WithElevatedLogLevel raises 4xx to WARN", func(t *testing.T) {
		buf := captureWarnLogs(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)

		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid credentials",
			errors.New("hash mismatch"), shared.WithElevatedLogLevel())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, buf.String(), "Invalid credentials")
		assert.Contains(t, buf.String(), `"level":"WARN"`)
	})

	t.Run("5xx always logs at ERROR", func(t *testing.T) {
		buf := captureWarnLogs(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/listings", nil)

		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list listings",
			errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("never leaks the internal error to the client", func(t *testing.T) {
		captureWarnLogs(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/listings", nil)

		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list listings",
			errors.New("pq: relation listings does not exist"))

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Failed to list listings", body.Message)
		assert.NotContains(t, w.Body.String(), "relation")
	})
}
