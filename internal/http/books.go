package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openshelf/internal/database"
	"openshelf/internal/database/books"
	"openshelf/internal/entities"
)

// CatalogStore is the database surface the books controller needs.
type CatalogStore interface {
	GetAllBooks() ([]entities.Book, error)
	SearchBooks(query string) ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(id uint, updated *entities.Book) error
	DeleteBook(id uint) error
}

type BooksController struct {
	store CatalogStore
}

func NewBooksController(store CatalogStore) *BooksController {
	return &BooksController{store: store}
}

type bookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	ISBN          string `json:"isbn" binding:"required"`
	Publisher     string `json:"publisher"`
	YearPublished int    `json:"year_published"`
	Genre         string `json:"genre"`
	TotalCopies   int    `json:"total_copies" binding:"gte=0"`
}

func (req *bookRequest) toEntity() *entities.Book {
	return &entities.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Publisher:     req.Publisher,
		YearPublished: req.YearPublished,
		Genre:         req.Genre,
		TotalCopies:   req.TotalCopies,
	}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	list, err := controller.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}
	list, err := controller.store.SearchBooks(query)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := controller.store.GetBookByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := req.toEntity()
	if err := controller.store.CreateBook(book); err != nil {
		if database.IsUniqueViolation(err) {
			respondBadRequest(c, "a book with this ISBN already exists")
			return
		}
		respondInternalError(c, err, "create book")
		return
	}
	respondCreated(c, book.ID, "Book added successfully")
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	err := controller.store.UpdateBook(id, req.toEntity())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, "book")
	case errors.Is(err, books.ErrTotalBelowIssued):
		respondBadRequest(c, err.Error())
	case database.IsUniqueViolation(err):
		respondBadRequest(c, "a book with this ISBN already exists")
	case err != nil:
		respondInternalError(c, err, "update book")
	default:
		respondSuccess(c, "Book updated successfully")
	}
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := controller.store.DeleteBook(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, "book")
	case err != nil:
		respondInternalError(c, err, "delete book")
	default:
		respondSuccess(c, "Book deleted successfully")
	}
}
