package types

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of membership roles. Every capability check in the
// permission gate keys off one of these values; there are no dynamic groups.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleEmployer   Role = "employer"
	RoleManagement Role = "management"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleEmployer, RoleManagement, RoleAdmin:
		return true
	}
	return false
}

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Company) TableName() string {
	return "company"
}

// Member ties a user to exactly one company with a role.
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
	Role      Role      `gorm:"not null;column:role" json:"role"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Member) TableName() string {
	return "member"
}
