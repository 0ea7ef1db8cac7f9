package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"openshelf/internal/circulation"
	"openshelf/internal/database"
	"openshelf/internal/database/books"
	"openshelf/internal/database/members"
	"openshelf/internal/database/transactions"
)

// setupTestServer wires a full router over a throwaway on-disk SQLite
// database, exactly as entrypoint.Run does in production.
func setupTestServer(t *testing.T) (*gin.Engine, *database.Database, func()) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Database:    db,
		Catalog:     books.NewRepository(db.DB),
		Membership:  members.NewRepository(db.DB),
		Circulation: circulation.NewService(db.DB),
		Reports:     transactions.NewRepository(db.DB),
		Version:     "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return router, db, cleanup
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

// --- Shared Fixtures ---

func createTestBook(t *testing.T, router *gin.Engine, title string, copies int) uint {
	w := performRequest(router, "POST", "/api/books", gin.H{
		"title":        title,
		"author":       "Test Author",
		"isbn":         "isbn-" + title,
		"total_copies": copies,
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp CreatedResponse
	decodeJSON(t, w, &resp)
	return resp.ID
}

func createTestMember(t *testing.T, router *gin.Engine, name string) uint {
	w := performRequest(router, "POST", "/api/members", gin.H{
		"name":  name,
		"email": strings.ToLower(name) + "@example.com",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp CreatedResponse
	decodeJSON(t, w, &resp)
	return resp.ID
}

// daysFromNow renders a calendar date offset days from today, the format
// the issue endpoint accepts.
func daysFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
