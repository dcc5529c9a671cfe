package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Reflection is an employee's free-text follow-up on a question they already
// answered in the session. Management is notified by mail on creation.
type Reflection struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reflection_once,priority:2;column:session_id" json:"session_id"`
	AnswererID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reflection_once,priority:1;column:answerer_id" json:"-"`
	QuestionID  uuid.UUID `gorm:"type:uuid;not null;index;column:question_id" json:"question_id"`
	Description string    `gorm:"not null;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Reflection) TableName() string {
	return "reflection"
}

// OutboundMail logs one dispatched (or attempted) notification mail together
// with the template context it was rendered from.
type OutboundMail struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ToEmail   string         `gorm:"not null;column:to_email" json:"to_email"`
	Subject   string         `gorm:"not null;column:subject" json:"subject"`
	Context   datatypes.JSON `gorm:"column:context" json:"context"`
	Status    string         `gorm:"not null;default:pending;column:status" json:"status"`
	SentAt    *time.Time     `gorm:"column:sent_at" json:"sent_at,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (OutboundMail) TableName() string {
	return "outbound_mail"
}
