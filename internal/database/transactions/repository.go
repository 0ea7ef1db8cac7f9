// Package transactions provides the read-only reporting queries over
// circulation history: joined listings, the overdue sweep and dashboard
// aggregation. Issuing and returning live in internal/circulation.
package transactions

import (
	"time"

	"gorm.io/gorm"

	"openshelf/internal/circulation"
	"openshelf/internal/entities"
)

// DetailedTransaction is a transaction row joined with the book and member
// columns the listings display.
type DetailedTransaction struct {
	entities.Transaction
	BookTitle   string `json:"book_title"`
	ISBN        string `json:"isbn"`
	MemberName  string `json:"member_name"`
	MemberEmail string `json:"member_email"`
	DaysOverdue int    `json:"days_overdue,omitempty"`
}

// DashboardStats aggregates the counters shown on the dashboard.
type DashboardStats struct {
	TotalBooks      int64 `json:"totalBooks"`
	TotalMembers    int64 `json:"totalMembers"`
	IssuedBooks     int64 `json:"issuedBooks"`
	OverdueBooks    int64 `json:"overdueBooks"`
	TotalCopies     int64 `json:"totalCopies"`
	AvailableCopies int64 `json:"availableCopies"`
}

// Repository handles reporting queries over the transactions table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reporting repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) joined() *gorm.DB {
	return r.db.Model(&entities.Transaction{}).
		Select("transactions.*, books.title AS book_title, books.isbn, members.name AS member_name, members.email AS member_email").
		Joins("JOIN books ON transactions.book_id = books.id").
		Joins("JOIN members ON transactions.member_id = members.id")
}

// GetAllTransactions returns the full circulation history, newest first.
func (r *Repository) GetAllTransactions() ([]DetailedTransaction, error) {
	var rows []DetailedTransaction
	err := r.joined().
		Order("transactions.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// GetActiveTransactions returns all open (issued or overdue) transactions
// ordered by due date, soonest first.
func (r *Repository) GetActiveTransactions() ([]DetailedTransaction, error) {
	var rows []DetailedTransaction
	err := r.joined().
		Where("transactions.status IN ?", []entities.TransactionStatus{
			entities.TransactionStatusIssued,
			entities.TransactionStatusOverdue,
		}).
		Order("transactions.due_date ASC").
		Scan(&rows).Error
	return rows, err
}

// MarkOverdue reclassifies issued transactions whose due date has passed to
// overdue, returning the number of rows flipped. Fine amounts are untouched;
// fines are always computed fresh at return time.
func (r *Repository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&entities.Transaction{}).
		Where("status = ? AND due_date < ?", entities.TransactionStatusIssued, circulation.DateOnly(now)).
		Update("status", entities.TransactionStatusOverdue)
	return result.RowsAffected, result.Error
}

// GetOverdueTransactions returns all overdue transactions with the number of
// days each is late, ordered by due date. Callers wanting fresh
// classification run MarkOverdue first.
func (r *Repository) GetOverdueTransactions(now time.Time) ([]DetailedTransaction, error) {
	var rows []DetailedTransaction
	err := r.joined().
		Where("transactions.status = ?", entities.TransactionStatusOverdue).
		Order("transactions.due_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].DaysOverdue = circulation.DaysOverdue(rows[i].DueDate, now)
	}
	return rows, nil
}

// GetDashboardStats aggregates the dashboard counters in one pass.
func (r *Repository) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&entities.Book{}).Count(&stats.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Member{}).
		Where("status = ?", entities.MemberStatusActive).
		Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Transaction{}).
		Where("status IN ?", []entities.TransactionStatus{
			entities.TransactionStatusIssued,
			entities.TransactionStatusOverdue,
		}).
		Count(&stats.IssuedBooks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Transaction{}).
		Where("status = ?", entities.TransactionStatusOverdue).
		Count(&stats.OverdueBooks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Book{}).
		Select("COALESCE(SUM(total_copies), 0)").
		Scan(&stats.TotalCopies).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Book{}).
		Select("COALESCE(SUM(available_copies), 0)").
		Scan(&stats.AvailableCopies).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
