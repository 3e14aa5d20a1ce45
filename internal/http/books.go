package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/bookstore-api/internal/domain"
	"github.com/tazhibayda/bookstore-api/internal/query"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

type createBookReq struct {
	Asin     string   `json:"asin" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Img      string   `json:"img" binding:"required"`
	// pointer so a present {"price": 0} passes required, a missing price fails
	Price    *float64 `json:"price" binding:"required"`
	Category string   `json:"category" binding:"required,oneof=horror fantasy history romance"`
	Authors  []string `json:"authors"`
}

// CreateBook godoc
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param payload body createBookReq true "book"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /books [post]
func (h *Handler) CreateBook(c *gin.Context) {
	var in createBookReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	authors, err := parseAuthorIDs(in.Authors)
	if err != nil {
		respondError(c, err)
		return
	}
	b := &domain.Book{
		Asin:     in.Asin,
		Title:    in.Title,
		Img:      in.Img,
		Price:    *in.Price,
		Category: in.Category,
		Authors:  authors,
	}
	if err := h.Store.CreateBook(c.Request.Context(), b); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": b.ID.Hex()})
}

func parseAuthorIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, badRequestf("invalid author id %q", r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ListBooks godoc
// @Summary List books with filter/sort/paging
// @Description Query syntax: field comparisons (price<10, category=fantasy) plus sort, limit, offset.
// @Tags books
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /books [get]
func (h *Handler) ListBooks(c *gin.Context) {
	q, err := query.Parse(c.Request.URL.RawQuery)
	if err != nil {
		respondError(c, badRequestf("bad query: %v", err))
		return
	}
	total, books, err := h.Store.ListBooks(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"links":     q.Links("/books", total),
		"pageTotal": q.PageTotal(total),
		"total":     total,
		"books":     books,
	})
}

func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.Store.FindBookByID(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Book", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type updateBookReq struct {
	Asin     *string   `json:"asin"`
	Title    *string   `json:"title"`
	Img      *string   `json:"img"`
	Price    *float64  `json:"price"`
	Category *string   `json:"category" binding:"omitempty,oneof=horror fantasy history romance"`
	Authors  *[]string `json:"authors"`
}

func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in updateBookReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	set := bson.M{}
	if in.Asin != nil {
		set["asin"] = *in.Asin
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Img != nil {
		set["img"] = *in.Img
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Authors != nil {
		authors, err := parseAuthorIDs(*in.Authors)
		if err != nil {
			respondError(c, err)
			return
		}
		set["authors"] = authors
	}
	b, err := h.Store.UpdateBook(c.Request.Context(), id, set)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Book", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.Store.DeleteBook(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Book", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
