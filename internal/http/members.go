package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"openshelf/internal/database"
	"openshelf/internal/entities"
)

// MembershipStore is the database surface the members controller needs.
type MembershipStore interface {
	GetAllMembers() ([]entities.Member, error)
	SearchMembers(query string) ([]entities.Member, error)
	GetMemberByID(id uint) (*entities.Member, error)
	CreateMember(member *entities.Member) error
	UpdateMember(id uint, updated *entities.Member) error
	DeleteMember(id uint) error
}

type MembersController struct {
	store MembershipStore
}

func NewMembersController(store MembershipStore) *MembersController {
	return &MembersController{store: store}
}

type memberRequest struct {
	Name    string                `json:"name" binding:"required"`
	Email   string                `json:"email" binding:"required,email"`
	Phone   string                `json:"phone"`
	Address string                `json:"address"`
	Status  entities.MemberStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (req *memberRequest) toEntity() *entities.Member {
	return &entities.Member{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  req.Status,
	}
}

func (controller *MembersController) GetAllMembers(c *gin.Context) {
	list, err := controller.store.GetAllMembers()
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (controller *MembersController) SearchMembers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}
	list, err := controller.store.SearchMembers(query)
	if err != nil {
		respondInternalError(c, err, "search members")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (controller *MembersController) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	member, err := controller.store.GetMemberByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "member")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (controller *MembersController) CreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	member := req.toEntity()
	if err := controller.store.CreateMember(member); err != nil {
		if database.IsUniqueViolation(err) {
			respondBadRequest(c, "a member with this email already exists")
			return
		}
		respondInternalError(c, err, "create member")
		return
	}
	respondCreated(c, member.ID, "Member added successfully")
}

func (controller *MembersController) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	member := req.toEntity()
	if member.Status == "" {
		member.Status = entities.MemberStatusActive
	}

	err := controller.store.UpdateMember(id, member)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, "member")
	case database.IsUniqueViolation(err):
		respondBadRequest(c, "a member with this email already exists")
	case err != nil:
		respondInternalError(c, err, "update member")
	default:
		respondSuccess(c, "Member updated successfully")
	}
}

func (controller *MembersController) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := controller.store.DeleteMember(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondNotFound(c, "member")
	case err != nil:
		respondInternalError(c, err, "delete member")
	default:
		respondSuccess(c, "Member deleted successfully")
	}
}
