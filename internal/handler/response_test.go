package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/apnaswastha/registry-api/pkg/apperror"
)

func writeErrorStatus(err error) (int, string) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	WriteError(c, err)
	return w.Code, w.Body.String()
}

func TestWriteErrorValidation(t *testing.T) {
	code, body := writeErrorStatus(apperror.NewValidation("healthId is required"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"healthId is required"}`, body)
}

func TestWriteErrorNotFound(t *testing.T) {
	code, body := writeErrorStatus(apperror.NewNotFound("worker"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"worker not found"}`, body)
}

func TestWriteErrorInternal(t *testing.T) {
	code, body := writeErrorStatus(apperror.NewInternal(errors.New("disk full")))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "disk full")
}

func TestWriteErrorUnclassified(t *testing.T) {
	code, body := writeErrorStatus(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"boom"}`, body)
}
