// Package circulation implements the issue/return lifecycle of book copies.
//
// Both operations run all precondition checks and effects inside a single
// database transaction: either the transaction row and the availability
// counter change together, or neither does. Availability updates are
// additionally guarded in SQL (available_copies > 0 on decrement,
// available_copies < total_copies on increment) so two concurrent issues of
// the last copy cannot both succeed.
package circulation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"openshelf/internal/config"
	"openshelf/internal/entities"
)

var openStatuses = []entities.TransactionStatus{
	entities.TransactionStatusIssued,
	entities.TransactionStatusOverdue,
}

// Service is the circulation engine. It owns the only code paths that
// mutate available_copies.
type Service struct {
	db             *gorm.DB
	now            func() time.Time
	dailyFineRate  float64
	loanPeriodDays int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, letting tests control "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithDailyFineRate overrides the fine charged per overdue day.
func WithDailyFineRate(rate float64) Option {
	return func(s *Service) {
		s.dailyFineRate = rate
	}
}

// WithLoanPeriod overrides the default loan length used when an issue
// request carries no due date.
func WithLoanPeriod(days int) Option {
	return func(s *Service) {
		s.loanPeriodDays = days
	}
}

// NewService creates a circulation engine on top of the given database
// handle.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:             db,
		now:            time.Now,
		dailyFineRate:  config.DefaultDailyFineRate,
		loanPeriodDays: config.DefaultLoanPeriodDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue lends a copy of the book to the member until dueDate and returns
// the created transaction. A zero dueDate defaults to the configured loan
// period from today.
//
// Preconditions, checked in order inside one database transaction: the book
// exists, a copy is available, the member exists, the member is active, and
// the member does not already hold this book. On any failure nothing is
// written.
func (s *Service) Issue(bookID, memberID uint, dueDate time.Time) (*entities.Transaction, error) {
	now := s.now()
	if dueDate.IsZero() {
		dueDate = DateOnly(now).AddDate(0, 0, s.loanPeriodDays)
	}

	var txn *entities.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return fmt.Errorf("failed to load book: %w", err)
		}
		if book.AvailableCopies <= 0 {
			return ErrNoCopiesAvailable
		}

		var member entities.Member
		if err := tx.First(&member, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("failed to load member: %w", err)
		}
		if member.Status != entities.MemberStatusActive {
			return ErrMemberInactive
		}

		var open int64
		err := tx.Model(&entities.Transaction{}).
			Where("book_id = ? AND member_id = ? AND status IN ?", bookID, memberID, openStatuses).
			Count(&open).Error
		if err != nil {
			return fmt.Errorf("failed to check open transactions: %w", err)
		}
		if open > 0 {
			return ErrDuplicateIssue
		}

		txn = &entities.Transaction{
			BookID:    bookID,
			MemberID:  memberID,
			IssueDate: now,
			DueDate:   dueDate,
			Status:    entities.TransactionStatusIssued,
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		// Guarded decrement: a concurrent issue that took the last copy
		// between the check above and here makes this affect zero rows,
		// which aborts and rolls back the whole transaction.
		result := tx.Model(&entities.Book{}).
			Where("id = ? AND available_copies > 0", bookID).
			Update("available_copies", gorm.Expr("available_copies - 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to decrement available copies: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNoCopiesAvailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Return closes an open transaction, computes the fine owed and puts the
// copy back in circulation. The returned transaction carries the final
// status, return date and fine.
//
// Returning an already-returned (or unknown) transaction fails with
// ErrNoActiveTransaction and changes nothing; the fine is computed fresh
// from the due date regardless of whether the row was ever reclassified to
// overdue.
func (s *Service) Return(transactionID uint) (*entities.Transaction, error) {
	now := s.now()

	var txn entities.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND status IN ?", transactionID, openStatuses).First(&txn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveTransaction
		}
		if err != nil {
			return fmt.Errorf("failed to load transaction: %w", err)
		}

		fine := CalculateFine(txn.DueDate, now, s.dailyFineRate)
		returnDate := DateOnly(now)

		result := tx.Model(&entities.Transaction{}).
			Where("id = ? AND status IN ?", transactionID, openStatuses).
			Updates(map[string]interface{}{
				"status":      entities.TransactionStatusReturned,
				"return_date": returnDate,
				"fine":        fine,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to close transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNoActiveTransaction
		}

		result = tx.Model(&entities.Book{}).
			Where("id = ? AND available_copies < total_copies", txn.BookID).
			Update("available_copies", gorm.Expr("available_copies + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment available copies: %w", result.Error)
		}

		txn.Status = entities.TransactionStatusReturned
		txn.ReturnDate = &returnDate
		txn.Fine = fine
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
