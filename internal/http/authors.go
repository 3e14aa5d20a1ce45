package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tazhibayda/bookstore-api/internal/domain"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

type createAuthorReq struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (h *Handler) CreateAuthor(c *gin.Context) {
	var in createAuthorReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	a := &domain.Author{FirstName: in.FirstName, LastName: in.LastName}
	if err := h.Store.CreateAuthor(c.Request.Context(), a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": a.ID.Hex()})
}

func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.Store.ListAuthors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *Handler) GetAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.Store.FindAuthorByID(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Author", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type updateAuthorReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in updateAuthorReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	set := bson.M{}
	if in.FirstName != nil {
		set["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		set["last_name"] = *in.LastName
	}
	a, err := h.Store.UpdateAuthor(c.Request.Context(), id, set)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Author", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.Store.DeleteAuthor(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Author", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
