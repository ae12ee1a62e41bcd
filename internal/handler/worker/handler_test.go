package worker

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnaswastha/registry-api/internal/asset"
	"github.com/apnaswastha/registry-api/internal/handler"
	"github.com/apnaswastha/registry-api/internal/handler/qrcode"
	"github.com/apnaswastha/registry-api/internal/qr"
	"github.com/apnaswastha/registry-api/internal/repository/csvfile"
	"github.com/apnaswastha/registry-api/internal/service/registration"
)

type testEnv struct {
	engine *gin.Engine
	qrs    *asset.QRStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	repo, err := csvfile.NewWorkerRepository(filepath.Join(dir, "workers.csv"))
	require.NoError(t, err)
	faces, err := asset.NewStore(filepath.Join(dir, "faces"))
	require.NoError(t, err)
	qrs, err := asset.NewQRStore(filepath.Join(dir, "qrs"))
	require.NoError(t, err)

	composer := qr.NewComposer(zerolog.Nop())
	svc := registration.NewService(repo, faces, qrs, composer, zerolog.Nop())

	engine := gin.New()
	api := engine.Group("/api")
	api.GET("/health", handler.NewHandler().HealthCheck)
	NewHandler(svc, zerolog.Nop(), true).RegisterRoutes(api)
	qrcode.NewHandler(composer).RegisterRoutes(api)

	return &testEnv{engine: engine, qrs: qrs}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterWorker(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/workers", map[string]interface{}{
		"healthId":         "W1001",
		"fullName":         "Asha Devi",
		"gender":           "Female",
		"nativeState":      "Bihar",
		"registrationDate": "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Worker saved", resp["message"])
	assert.Equal(t, "W1001", resp["healthId"])
	assert.Contains(t, resp["qrUrl"], "/api/workers/W1001/qr.png")
	assert.Nil(t, resp["faceUrl"])
}

func TestRegisterWorkerLogsHealthID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	repo, err := csvfile.NewWorkerRepository(filepath.Join(dir, "workers.csv"))
	require.NoError(t, err)
	faces, err := asset.NewStore(filepath.Join(dir, "faces"))
	require.NoError(t, err)
	qrs, err := asset.NewQRStore(filepath.Join(dir, "qrs"))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	svc := registration.NewService(repo, faces, qrs, qr.NewComposer(logger), logger)

	engine := gin.New()
	NewHandler(svc, logger, true).RegisterRoutes(engine.Group("/api"))

	body, err := json.Marshal(map[string]interface{}{"healthId": "W1001"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/workers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, logs.String(), "worker registered")
	assert.Contains(t, logs.String(), "W1001")
}

func TestRegisterWorkerBlankHealthID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/workers", map[string]interface{}{
		"healthId": "   ",
		"fullName": "Nobody",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list := env.do(t, http.MethodGet, "/api/workers", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestGetWorker(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/workers", map[string]interface{}{
		"healthId":         "W1001",
		"fullName":         "Asha Devi",
		"registrationDate": "2024-01-15",
	})

	w := env.do(t, http.MethodGet, "/api/workers/W1001", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var worker map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &worker))
	assert.Equal(t, "Asha Devi", worker["full_name"])
	assert.Equal(t, "2024-01-15", worker["registration_date"])
}

func TestGetWorkerNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/workers/W9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWorkerQR(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/workers", map[string]interface{}{
		"healthId": "W1001",
		"fullName": "Asha Devi",
	})

	w := env.do(t, http.MethodGet, "/api/workers/W1001/qr.png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
}

func TestGetWorkerQRRegeneratesAfterDelete(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/workers", map[string]interface{}{
		"healthId": "W1001",
		"fullName": "Asha Devi",
	})
	require.NoError(t, env.qrs.Delete("W1001"))

	w := env.do(t, http.MethodGet, "/api/workers/W1001/qr.png", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
}

func TestGetWorkerQRUnknownWorker(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/workers/W9999/qr.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWorkerFaceNotStored(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/workers", map[string]interface{}{
		"healthId": "W1001",
	})

	w := env.do(t, http.MethodGet, "/api/workers/W1001/face.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateQR(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/generate-qr?data=hello", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
}

func TestGenerateQRMissingData(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/generate-qr", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
