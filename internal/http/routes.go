package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())
	r.Use(Metrics())
	// cross-origin requests are permitted unconditionally
	r.Use(cors.Default())

	rl := RateLimit(h.Redis, h.RateLimitPerMin)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := r.Group("/users")
	{
		users.POST("", rl, h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", rl, h.UpdateUser)
		users.DELETE("/:id", rl, h.DeleteUser)

		users.POST("/:id/purchaseHistory", rl, h.AddPurchase)
		users.GET("/:id/purchaseHistory", h.ListPurchases)
		users.GET("/:id/purchaseHistory/:pid", h.GetPurchase)
		users.PUT("/:id/purchaseHistory/:pid", rl, h.UpdatePurchase)
		users.DELETE("/:id/purchaseHistory/:pid", rl, h.DeletePurchase)
	}

	books := r.Group("/books")
	{
		books.POST("", rl, h.CreateBook)
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", rl, h.UpdateBook)
		books.DELETE("/:id", rl, h.DeleteBook)
	}

	authors := r.Group("/authors")
	{
		authors.POST("", rl, h.CreateAuthor)
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthor)
		authors.PUT("/:id", rl, h.UpdateAuthor)
		authors.DELETE("/:id", rl, h.DeleteAuthor)
	}

	r.POST("/carts/:ownerId/addToCart", rl, h.AddToCart)

	return r
}
