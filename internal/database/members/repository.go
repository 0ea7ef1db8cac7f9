// Package members provides database operations for membership management.
package members

import (
	"time"

	"gorm.io/gorm"

	"openshelf/internal/entities"
)

// Repository handles all membership database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new membership repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllMembers returns every member ordered by name.
func (r *Repository) GetAllMembers() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Order("name ASC").Find(&members).Error
	return members, err
}

// SearchMembers returns members whose name, email or phone contains the
// query substring.
func (r *Repository) SearchMembers(query string) ([]entities.Member, error) {
	var members []entities.Member
	pattern := "%" + query + "%"
	err := r.db.
		Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

// GetMemberByID retrieves a single member.
func (r *Repository) GetMemberByID(id uint) (*entities.Member, error) {
	var member entities.Member
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateMember registers a new member. New members start active with the
// membership date set to now unless given.
func (r *Repository) CreateMember(member *entities.Member) error {
	if member.Status == "" {
		member.Status = entities.MemberStatusActive
	}
	if member.MembershipDate.IsZero() {
		member.MembershipDate = time.Now()
	}
	return r.db.Create(member).Error
}

// UpdateMember applies the given fields to an existing member.
func (r *Repository) UpdateMember(id uint, updated *entities.Member) error {
	result := r.db.Model(&entities.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":    updated.Name,
			"email":   updated.Email,
			"phone":   updated.Phone,
			"address": updated.Address,
			"status":  updated.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMember removes a member.
func (r *Repository) DeleteMember(id uint) error {
	result := r.db.Delete(&entities.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
