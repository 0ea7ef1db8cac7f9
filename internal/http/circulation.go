package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"openshelf/internal/circulation"
	"openshelf/internal/database/transactions"
	"openshelf/internal/entities"
)

// CirculationEngine is the issue/return surface exposed by
// internal/circulation.Service.
type CirculationEngine interface {
	Issue(bookID, memberID uint, dueDate time.Time) (*entities.Transaction, error)
	Return(transactionID uint) (*entities.Transaction, error)
}

// TransactionReporter is the reporting surface exposed by
// internal/database/transactions.Repository.
type TransactionReporter interface {
	GetAllTransactions() ([]transactions.DetailedTransaction, error)
	GetActiveTransactions() ([]transactions.DetailedTransaction, error)
	MarkOverdue(now time.Time) (int64, error)
	GetOverdueTransactions(now time.Time) ([]transactions.DetailedTransaction, error)
	GetDashboardStats() (*transactions.DashboardStats, error)
}

type CirculationController struct {
	engine  CirculationEngine
	reports TransactionReporter
	now     func() time.Time
}

func NewCirculationController(engine CirculationEngine, reports TransactionReporter) *CirculationController {
	return &CirculationController{
		engine:  engine,
		reports: reports,
		now:     time.Now,
	}
}

type issueRequest struct {
	BookID   uint   `json:"book_id" binding:"required"`
	MemberID uint   `json:"member_id" binding:"required"`
	DueDate  string `json:"due_date"`
}

// ReturnResponse reports the outcome of a return, fine included.
type ReturnResponse struct {
	Message string  `json:"message"`
	Fine    float64 `json:"fine"`
}

// parseDueDate accepts a plain calendar date or an RFC 3339 timestamp.
func parseDueDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (controller *CirculationController) respondEngineError(c *gin.Context, err error, context string) {
	switch {
	case circulation.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case circulation.IsInvalidState(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		respondInternalError(c, err, context)
	}
}

// IssueBook lends a book to a member.
func (controller *CirculationController) IssueBook(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondBadRequest(c, "invalid due_date, expected YYYY-MM-DD")
		return
	}

	txn, err := controller.engine.Issue(req.BookID, req.MemberID, dueDate)
	if err != nil {
		controller.respondEngineError(c, err, "issue book")
		return
	}
	respondCreated(c, txn.ID, "Book issued successfully")
}

// ReturnBook closes an open transaction and reports the fine owed.
func (controller *CirculationController) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := controller.engine.Return(id)
	if err != nil {
		controller.respondEngineError(c, err, "return book")
		return
	}
	c.JSON(http.StatusOK, ReturnResponse{Message: "Book returned successfully", Fine: txn.Fine})
}

// GetAllTransactions lists the full circulation history.
func (controller *CirculationController) GetAllTransactions(c *gin.Context) {
	rows, err := controller.reports.GetAllTransactions()
	if err != nil {
		respondInternalError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetActiveTransactions lists open transactions ordered by due date.
func (controller *CirculationController) GetActiveTransactions(c *gin.Context) {
	rows, err := controller.reports.GetActiveTransactions()
	if err != nil {
		respondInternalError(c, err, "list active transactions")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetOverdueTransactions sweeps issued rows past their due date to overdue,
// then lists all overdue transactions with days_overdue.
func (controller *CirculationController) GetOverdueTransactions(c *gin.Context) {
	now := controller.now()
	if _, err := controller.reports.MarkOverdue(now); err != nil {
		respondInternalError(c, err, "mark overdue")
		return
	}
	rows, err := controller.reports.GetOverdueTransactions(now)
	if err != nil {
		respondInternalError(c, err, "list overdue transactions")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetDashboardStats returns the aggregate counters for the dashboard.
func (controller *CirculationController) GetDashboardStats(c *gin.Context) {
	stats, err := controller.reports.GetDashboardStats()
	if err != nil {
		respondInternalError(c, err, "dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
