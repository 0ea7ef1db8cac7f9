// Package books provides database operations for the catalog.
//
// available_copies is owned by the circulation engine; the only catalog
// path that touches it is Update, which recomputes it when total_copies
// changes.
package books

import (
	"errors"

	"gorm.io/gorm"

	"openshelf/internal/entities"
)

// ErrTotalBelowIssued is returned when an update would shrink total_copies
// below the number of copies currently out with members.
var ErrTotalBelowIssued = errors.New("cannot reduce total copies below currently issued count")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks returns the full catalog ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title ASC").Find(&books).Error
	return books, err
}

// SearchBooks returns books whose title, author, ISBN or genre contains the
// query substring.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + query + "%"
	err := r.db.
		Where("title LIKE ? OR author LIKE ? OR isbn LIKE ? OR genre LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetBookByID retrieves a single book.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts a new book with all copies available.
func (r *Repository) CreateBook(book *entities.Book) error {
	book.AvailableCopies = book.TotalCopies
	return r.db.Create(book).Error
}

// UpdateBook applies the given fields to an existing book. available_copies
// is recomputed by diffing the new total against the stored one, so copies
// currently out with members stay accounted for. The update is rejected
// when the new total would force available_copies negative.
func (r *Repository) UpdateBook(id uint, updated *entities.Book) error {
	var current entities.Book
	if err := r.db.First(&current, id).Error; err != nil {
		return err
	}

	diff := updated.TotalCopies - current.TotalCopies
	newAvailable := current.AvailableCopies + diff
	if newAvailable < 0 {
		return ErrTotalBelowIssued
	}

	return r.db.Model(&entities.Book{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":            updated.Title,
			"author":           updated.Author,
			"isbn":             updated.ISBN,
			"publisher":        updated.Publisher,
			"year_published":   updated.YearPublished,
			"genre":            updated.Genre,
			"total_copies":     updated.TotalCopies,
			"available_copies": newAvailable,
		}).Error
}

// DeleteBook removes a book from the catalog.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
