package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/bookstore-api/internal/queue"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

type Handler struct {
	Store           *repo.Store
	Events          queue.Publisher
	Redis           *repo.Redis
	RateLimitPerMin int
}

func NewHandler(store *repo.Store, events queue.Publisher, rds *repo.Redis, rlPerMin int) *Handler {
	if events == nil {
		events = queue.NewNoop()
	}
	return &Handler{
		Store:           store,
		Events:          events,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
	}
}

// parseID turns a path parameter into an ObjectID; a malformed id is a
// BadRequest, matching the cast-error behavior of the document store.
func parseID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		respondError(c, badRequestf("invalid id %q", c.Param(param)))
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
