package types

import (
	"time"

	"github.com/google/uuid"
)

// MetaCategory is a company's demographic grouping (department, seniority,
// contract type). Its tags carry the actual weights.
type MetaCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meta_category,priority:1;column:company_id" json:"company_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_meta_category,priority:2;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (MetaCategory) TableName() string {
	return "meta_category"
}

// UserMetaTag links one category option and its weight to a user. UserID is
// nullable: the link may be severed while the weight row itself is kept, so
// historical scoring inputs stay resolvable.
type UserMetaTag struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CategoryID uuid.UUID  `gorm:"type:uuid;not null;index;column:category_id" json:"category_id"`
	Label      string     `gorm:"not null;column:label" json:"label"`
	Weight     float64    `gorm:"type:numeric(4,1);not null;default:1;column:weight" json:"weight"`
	UserID     *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (UserMetaTag) TableName() string {
	return "user_meta_tag"
}
