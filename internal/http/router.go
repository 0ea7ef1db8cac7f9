package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Catalog)
	membersController := NewMembersController(cfg.Membership)
	circulationController := NewCirculationController(cfg.Circulation, cfg.Reports)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog endpoints
	router.GET("/api/books", booksController.GetAllBooks)
	router.GET("/api/books/search", booksController.SearchBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.POST("/api/books", booksController.CreateBook)
	router.PUT("/api/books/:id", booksController.UpdateBook)
	router.DELETE("/api/books/:id", booksController.DeleteBook)

	// Membership endpoints
	router.GET("/api/members", membersController.GetAllMembers)
	router.GET("/api/members/search", membersController.SearchMembers)
	router.GET("/api/members/:id", membersController.GetMember)
	router.POST("/api/members", membersController.CreateMember)
	router.PUT("/api/members/:id", membersController.UpdateMember)
	router.DELETE("/api/members/:id", membersController.DeleteMember)

	// Circulation endpoints
	router.POST("/api/transactions/issue", circulationController.IssueBook)
	router.POST("/api/transactions/return/:id", circulationController.ReturnBook)
	router.GET("/api/transactions", circulationController.GetAllTransactions)
	router.GET("/api/transactions/active", circulationController.GetActiveTransactions)
	router.GET("/api/transactions/overdue", circulationController.GetOverdueTransactions)
	router.GET("/api/transactions/stats/dashboard", circulationController.GetDashboardStats)

	return router
}
