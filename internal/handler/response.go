package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apnaswastha/registry-api/pkg/apperror"
)

// WriteError maps an error to its HTTP status through the apperror codes.
// Unexpected errors surface as a generic 500 with the underlying message.
func WriteError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperror.ErrValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		case apperror.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
			return
		case apperror.ErrInternal:
			c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// BaseURL reconstructs the externally usable origin for the request,
// substituting a loopback hostname for a non-routable bind address so
// returned links work from a client machine.
func BaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := c.Request.Host
	if len(host) >= 7 && host[:7] == "0.0.0.0" {
		host = "localhost" + host[7:]
	}
	return scheme + "://" + host
}
