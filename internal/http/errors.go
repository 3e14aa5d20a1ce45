package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	applog "github.com/tazhibayda/bookstore-api/internal/log"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

// Handlers never recover failures locally; everything funnels through
// respondError, which maps the error taxonomy onto a status code and a
// {"message": ...} body. Unknown errors become a generic 500.

type notFoundError struct {
	resource string
	id       string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found!", e.resource, e.id)
}

// Unwrap ties the HTTP-facing error to the store sentinel so errors.Is
// works across the layers.
func (e notFoundError) Unwrap() error { return repo.ErrNotFound }

func notFound(resource, id string) error {
	return notFoundError{resource: resource, id: id}
}

type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func badRequestf(format string, args ...any) error {
	return badRequestError{msg: fmt.Sprintf(format, args...)}
}

func respondError(c *gin.Context, err error) {
	var nf notFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
		return
	}

	// a store sentinel that slipped through without resource context
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}

	var br badRequestError
	if errors.As(err, &br) {
		c.JSON(http.StatusBadRequest, gin.H{"message": br.Error()})
		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	applog.L().Error("request failed",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
}

// bindError wraps any binding failure (malformed JSON, failed validation)
// as a bad request; validation detail is kept in the message.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return err
	}
	return badRequestf("invalid request body: %v", err)
}
