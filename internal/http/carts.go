package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/bookstore-api/internal/domain"
	"github.com/tazhibayda/bookstore-api/internal/queue"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

type addToCartReq struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// AddToCart godoc
// @Summary Add a book to the owner's active cart
// @Description Increments the quantity when the book is already a line-item; otherwise pushes a new line-item, creating the active cart if needed.
// @Tags carts
// @Accept json
// @Produce json
// @Param ownerId path string true "owner (user) id"
// @Param payload body addToCartReq true "bookId, quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /carts/{ownerId}/addToCart [post]
func (h *Handler) AddToCart(c *gin.Context) {
	ownerID, err := primitive.ObjectIDFromHex(c.Param("ownerId"))
	if err != nil {
		respondError(c, badRequestf("invalid owner id %q", c.Param("ownerId")))
		return
	}
	var in addToCartReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	bookID, err := primitive.ObjectIDFromHex(in.BookID)
	if err != nil {
		respondError(c, badRequestf("invalid bookId %q", in.BookID))
		return
	}

	book, err := h.Store.FindBookByID(c.Request.Context(), bookID)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("Book", bookID.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	// two branches: the book is either already a line-item of the active
	// cart (increment) or not (push, upserting the cart). The read-then-write
	// window between these is accepted, as each write is single-document
	// atomic.
	_, err = h.Store.FindActiveCartWithItem(c.Request.Context(), ownerID, book.Asin)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		respondError(c, err)
		return
	}

	var cart *domain.Cart
	if err == nil {
		cart, err = h.Store.IncItemQuantity(c.Request.Context(), ownerID, book.Asin, in.Quantity)
	} else {
		item := domain.CartProduct{
			ID:       primitive.NewObjectID(),
			Asin:     book.Asin,
			Title:    book.Title,
			Img:      book.Img,
			Price:    book.Price,
			Category: book.Category,
			Quantity: in.Quantity,
		}
		cart, err = h.Store.PushItem(c.Request.Context(), ownerID, item)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	reqID := c.GetString(requestIDKey)
	go func() {
		_ = h.Events.Publish(context.Background(), queue.Exchange, "cart.item_added",
			queue.CartItemAdded{OwnerID: ownerID, Asin: book.Asin, Quantity: in.Quantity}, reqID)
	}()

	c.JSON(http.StatusOK, cart)
}
