package types

import (
	"time"

	"github.com/google/uuid"
)

// AnsweredRecord is a user's answer to one question in one session. Value is
// computed once at creation and never updated afterwards; catalog changes do
// not rewrite history. OptionID is nullable so retiring or removing an
// option cannot invalidate the stored score.
type AnsweredRecord struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Value      float64    `gorm:"type:numeric(8,2);not null;column:value" json:"value"`
	OptionID   *uuid.UUID `gorm:"type:uuid;column:option_id" json:"option_id,omitempty"`
	AnswererID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_answered_once,priority:1;column:answerer_id" json:"-"`
	QuestionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_answered_once,priority:2;column:question_id" json:"question_id"`
	SessionID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_answered_once,priority:3;index;column:session_id" json:"session_id"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (AnsweredRecord) TableName() string {
	return "answered_record"
}

// StimulationRecord stores the answer to a session's bonus question. Unlike
// regular answers the value is the raw relative value, with no weighting.
type StimulationRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Value         float64    `gorm:"type:numeric(8,2);not null;column:value" json:"value"`
	OptionID      *uuid.UUID `gorm:"type:uuid;column:option_id" json:"option_id,omitempty"`
	AnswererID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stimulation_once,priority:1;column:answerer_id" json:"-"`
	StimulationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stimulation_once,priority:2;column:stimulation_id" json:"stimulation_id"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (StimulationRecord) TableName() string {
	return "stimulation_record"
}
