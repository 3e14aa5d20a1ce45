package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazhibayda/bookstore-api/internal/repo"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, err)
	return w
}

func TestRespondError_StatusMapping(t *testing.T) {
	w := respond(t, notFound("Book", "abc"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book with id abc not found!"}`, w.Body.String())

	// a bare store sentinel still maps to 404, just without resource context
	w = respond(t, repo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = respond(t, badRequestf("invalid id %q", "zzz"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = respond(t, errors.New("mongo went away"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"something went wrong"}`, w.Body.String())
}

func TestNotFound_WrapsStoreSentinel(t *testing.T) {
	err := notFound("User", "abc")
	require.True(t, errors.Is(err, repo.ErrNotFound))
}
