package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openshelf/internal/entities"
)

func TestBooksAPI_Create(t *testing.T) {
	t.Run("creates a book with all copies available", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		w := performRequest(router, "POST", "/api/books", gin.H{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"isbn":         "978-0441172719",
			"total_copies": 3,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp CreatedResponse
		decodeJSON(t, w, &resp)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, "Book added successfully", resp.Message)

		get := performRequest(router, "GET", "/api/books", nil)
		require.Equal(t, http.StatusOK, get.Code)

		var list []entities.Book
		decodeJSON(t, get, &list)
		require.Len(t, list, 1)
		assert.Equal(t, 3, list[0].AvailableCopies)
	})

	t.Run("rejects a missing title", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		w := performRequest(router, "POST", "/api/books", gin.H{
			"author": "Frank Herbert",
			"isbn":   "978-0441172719",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a duplicate ISBN", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		payload := gin.H{"title": "Dune", "author": "Herbert", "isbn": "978-0441172719", "total_copies": 1}
		require.Equal(t, http.StatusCreated, performRequest(router, "POST", "/api/books", payload).Code)

		w := performRequest(router, "POST", "/api/books", payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "a book with this ISBN already exists", resp.Error)
	})
}

func TestBooksAPI_Get(t *testing.T) {
	t.Run("returns a book by id", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		id := createTestBook(t, router, "Dune", 2)

		w := performRequest(router, "GET", "/api/books/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var book entities.Book
		decodeJSON(t, w, &book)
		assert.Equal(t, id, book.ID)
		assert.Equal(t, "Dune", book.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		w := performRequest(router, "GET", "/api/books/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "book not found", resp.Error)
	})

	t.Run("malformed id", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		w := performRequest(router, "GET", "/api/books/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksAPI_Search(t *testing.T) {
	router, _, cleanup := setupTestServer(t)
	defer cleanup()

	createTestBook(t, router, "The Pragmatic Programmer", 1)
	createTestBook(t, router, "Dune", 1)

	t.Run("finds by substring", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/search?q=Pragmatic", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []entities.Book
		decodeJSON(t, w, &list)
		require.Len(t, list, 1)
		assert.Equal(t, "The Pragmatic Programmer", list[0].Title)
	})

	t.Run("missing query parameter", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksAPI_Update(t *testing.T) {
	t.Run("raising total raises availability", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		id := createTestBook(t, router, "Dune", 2)

		w := performRequest(router, "PUT", "/api/books/1", gin.H{
			"title":        "Dune",
			"author":       "Test Author",
			"isbn":         "isbn-Dune",
			"total_copies": 5,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		get := performRequest(router, "GET", "/api/books/1", nil)
		var book entities.Book
		decodeJSON(t, get, &book)
		assert.Equal(t, id, book.ID)
		assert.Equal(t, 5, book.TotalCopies)
		assert.Equal(t, 5, book.AvailableCopies)
	})

	t.Run("rejects shrinking total below issued count", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := createTestBook(t, router, "Dune", 2)
		memberID := createTestMember(t, router, "Ada")

		issue := performRequest(router, "POST", "/api/transactions/issue", gin.H{
			"book_id":   bookID,
			"member_id": memberID,
		})
		require.Equal(t, http.StatusCreated, issue.Code, issue.Body.String())

		// One of two copies is out, so total cannot drop to zero
		w := performRequest(router, "PUT", "/api/books/1", gin.H{
			"title":        "Dune",
			"author":       "Test Author",
			"isbn":         "isbn-Dune",
			"total_copies": 0,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "cannot reduce total copies below currently issued count", resp.Error)
	})

	t.Run("unknown book", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		w := performRequest(router, "PUT", "/api/books/999", gin.H{
			"title":        "Ghost",
			"author":       "Nobody",
			"isbn":         "isbn-ghost",
			"total_copies": 1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksAPI_Delete(t *testing.T) {
	t.Run("deletes an existing book", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		createTestBook(t, router, "Gone", 1)

		w := performRequest(router, "DELETE", "/api/books/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		get := performRequest(router, "GET", "/api/books/1", nil)
		assert.Equal(t, http.StatusNotFound, get.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		router, _, cleanup := setupTestServer(t)
		defer cleanup()

		w := performRequest(router, "DELETE", "/api/books/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
