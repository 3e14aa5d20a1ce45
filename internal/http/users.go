package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/bookstore-api/internal/domain"
	"github.com/tazhibayda/bookstore-api/internal/queue"
	"github.com/tazhibayda/bookstore-api/internal/repo"
)

type createUserReq struct {
	FirstName   string     `json:"firstName" binding:"required"`
	LastName    string     `json:"lastName" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Age         int        `json:"age" binding:"required,gte=18,lte=65"`
	Professions []string   `json:"professions"`
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body createUserReq true "user"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var in createUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	u := &domain.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		DateOfBirth: in.DateOfBirth,
		Age:         in.Age,
		Professions: in.Professions,
	}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}

	reqID := c.GetString(requestIDKey)
	go func() {
		_ = h.Events.Publish(context.Background(), queue.Exchange, "user.created",
			queue.UserCreated{UserID: u.ID, Email: u.Email}, reqID)
	}()

	c.JSON(http.StatusCreated, gin.H{"id": u.ID.Hex()})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} domain.User
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateUserReq struct {
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Age         *int       `json:"age" binding:"omitempty,gte=18,lte=65"`
	Professions *[]string  `json:"professions"`
}

func (r updateUserReq) fields() bson.M {
	set := bson.M{}
	if r.FirstName != nil {
		set["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		set["last_name"] = *r.LastName
	}
	if r.Email != nil {
		set["email"] = *r.Email
	}
	if r.DateOfBirth != nil {
		set["date_of_birth"] = *r.DateOfBirth
	}
	if r.Age != nil {
		set["age"] = *r.Age
	}
	if r.Professions != nil {
		set["professions"] = *r.Professions
	}
	return set
}

// UpdateUser merges the provided fields into the user document.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in updateUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}
	u, err := h.Store.UpdateUser(c.Request.Context(), id, in.fields())
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.Store.DeleteUser(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", id.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addPurchaseReq struct {
	BookID string `json:"bookId" binding:"required"`
}

// AddPurchase godoc
// @Summary Append a purchase-history entry
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param payload body addPurchaseReq true "bookId"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /users/{id}/purchaseHistory [post]
func (h *Handler) AddPurchase(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in addPurchaseReq
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

	// book snapshot minus its own id, plus the purchase timestamp; the entry
	// gets a fresh id of its own
	entry := domain.PurchaseEntry{
		ID:           primitive.NewObjectID(),
		Asin:         book.Asin,
		Title:        book.Title,
		Img:          book.Img,
		Price:        book.Price,
		Category:     book.Category,
		PurchaseDate: time.Now().UTC(),
	}

	u, err := h.Store.PushPurchase(c.Request.Context(), userID, entry)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", userID.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	reqID := c.GetString(requestIDKey)
	go func() {
		_ = h.Events.Publish(context.Background(), queue.Exchange, "purchase.recorded",
			queue.PurchaseRecorded{UserID: userID, BookID: bookID, Asin: book.Asin}, reqID)
	}()

	c.JSON(http.StatusOK, u)
}

func (h *Handler) ListPurchases(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), userID)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", userID.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.PurchaseHistory)
}

// GetPurchase scans the embedded array by item id, compared as opaque
// identifier strings.
func (h *Handler) GetPurchase(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	pid := c.Param("pid")

	u, err := h.Store.FindUserByID(c.Request.Context(), userID)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", userID.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	for _, entry := range u.PurchaseHistory {
		if entry.ID.Hex() == pid {
			c.JSON(http.StatusOK, entry)
			return
		}
	}
	respondError(c, notFound("Book", pid))
}

type updatePurchaseReq struct {
	Asin     *string  `json:"asin"`
	Title    *string  `json:"title"`
	Img      *string  `json:"img"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
}

// UpdatePurchase merges fields onto the matched entry and persists the whole
// user document.
func (h *Handler) UpdatePurchase(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	pid := c.Param("pid")

	var in updatePurchaseReq
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, bindError(err))
		return
	}

	u, err := h.Store.FindUserByID(c.Request.Context(), userID)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", userID.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	idx := -1
	for i := range u.PurchaseHistory {
		if u.PurchaseHistory[i].ID.Hex() == pid {
			idx = i
			break
		}
	}
	if idx == -1 {
		respondError(c, notFound("Book", pid))
		return
	}

	e := &u.PurchaseHistory[idx]
	if in.Asin != nil {
		e.Asin = *in.Asin
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Img != nil {
		e.Img = *in.Img
	}
	if in.Price != nil {
		e.Price = *in.Price
	}
	if in.Category != nil {
		e.Category = *in.Category
	}

	if err := h.Store.ReplaceUser(c.Request.Context(), u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeletePurchase(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("pid"))
	if err != nil {
		respondError(c, badRequestf("invalid id %q", c.Param("pid")))
		return
	}
	u, err := h.Store.PullPurchase(c.Request.Context(), userID, entryID)
	if errors.Is(err, repo.ErrNotFound) {
		respondError(c, notFound("User", userID.Hex()))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
