package entities

import (
	"time"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

type TransactionStatus string

const (
	TransactionStatusIssued   TransactionStatus = "issued"
	TransactionStatusOverdue  TransactionStatus = "overdue"
	TransactionStatusReturned TransactionStatus = "returned"
)

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	Author          string    `gorm:"index;size:256" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:20" json:"isbn"`
	Publisher       string    `gorm:"size:256" json:"publisher,omitempty"`
	YearPublished   int       `json:"year_published,omitempty"`
	Genre           string    `gorm:"size:100" json:"genre,omitempty"`
	TotalCopies     int       `gorm:"not null;default:1" json:"total_copies"`
	AvailableCopies int       `gorm:"not null;default:1" json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Member struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"index;size:256" json:"name"`
	Email          string       `gorm:"uniqueIndex;size:255" json:"email"`
	Phone          string       `gorm:"size:20" json:"phone,omitempty"`
	Address        string       `gorm:"size:512" json:"address,omitempty"`
	MembershipDate time.Time    `json:"membership_date"`
	Status         MemberStatus `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Transaction records one circulation of a book copy to a member.
// Once Status reaches "returned" the row is never mutated again.
type Transaction struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	BookID     uint              `gorm:"index;not null" json:"book_id"`
	MemberID   uint              `gorm:"index;not null" json:"member_id"`
	IssueDate  time.Time         `json:"issue_date"`
	DueDate    time.Time         `gorm:"index" json:"due_date"`
	ReturnDate *time.Time        `json:"return_date,omitempty"`
	Fine       float64           `gorm:"not null;default:0" json:"fine"`
	Status     TransactionStatus `gorm:"size:20;default:'issued';index" json:"status"`
	Book       Book              `gorm:"foreignKey:BookID" json:"-"`
	Member     Member            `gorm:"foreignKey:MemberID" json:"-"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// IsOpen reports whether the book copy is still out with the member.
func (t Transaction) IsOpen() bool {
	return t.Status == TransactionStatusIssued || t.Status == TransactionStatusOverdue
}

func (Book) TableName() string {
	return "books"
}

func (Member) TableName() string {
	return "members"
}

func (Transaction) TableName() string {
	return "transactions"
}
