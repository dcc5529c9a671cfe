package types

import (
	"time"

	"github.com/google/uuid"
)

// Session is one fielding window of a question set for a company. The unique
// (company, theme) index keeps a company from running two concurrent rounds
// on the same theme.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SetID     uuid.UUID `gorm:"type:uuid;not null;index;column:set_id" json:"set_id"`
	ThemeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_company_theme,priority:2;column:theme_id" json:"theme_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_company_theme,priority:1;column:company_id" json:"company_id"`
	Start     time.Time `gorm:"not null;column:start" json:"start"`
	Until     time.Time `gorm:"not null;column:until" json:"until"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Session) TableName() string {
	return "session"
}
