package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenariosHandler(t *testing.T) {
	dataDir := t.TempDir()
	scenariosDir := filepath.Join(dataDir, "scenarios")
	require.NoError(t, os.MkdirAll(scenariosDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scenariosDir, "hut.json"), []byte(testScenarioJSON), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewScenariosHandler(dataDir, logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var scenarios map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scenarios))
	assert.Equal(t, map[string]string{"Hut": "hut.json"}, scenarios)
}

func TestScenariosHandlerEmptyDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewScenariosHandler(t.TempDir(), logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "{}", rec.Body.String())
}

func TestScenariosHandlerMethodNotAllowed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewScenariosHandler(t.TempDir(), logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/scenarios", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
