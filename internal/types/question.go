package types

import (
	"time"

	"github.com/google/uuid"
)

// QuestionTheme groups question sets by topic. Its weight scales company
// level rollups.
type QuestionTheme struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Label     string    `gorm:"uniqueIndex;not null;column:label" json:"label"`
	Weight    float64   `gorm:"type:numeric(4,1);not null;default:1;column:weight" json:"weight"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (QuestionTheme) TableName() string {
	return "question_theme"
}

// QuestionSet is the collection of questions fielded by one session. Its
// weight scales session level rollups.
type QuestionSet struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ThemeID   uuid.UUID `gorm:"type:uuid;not null;index;column:theme_id" json:"theme_id"`
	Label     string    `gorm:"not null;column:label" json:"label"`
	Weight    float64   `gorm:"type:numeric(4,1);not null;default:1;column:weight" json:"weight"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (QuestionSet) TableName() string {
	return "question_set"
}

type Question struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SetID        uuid.UUID  `gorm:"type:uuid;not null;index;column:set_id" json:"set_id"`
	CollectionID uuid.UUID  `gorm:"type:uuid;not null;index;column:collection_id" json:"collection_id"`
	Text         string     `gorm:"uniqueIndex;not null;column:text" json:"text"`
	Weight       float64    `gorm:"type:numeric(4,1);not null;default:1;check:weight > 0;column:weight" json:"weight"`
	RetiredAt    *time.Time `gorm:"column:retired_at" json:"retired_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Question) TableName() string {
	return "question"
}

// Stimulation is the optional game-like bonus question shown after a
// session's regular question set is finished.
type Stimulation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID    uuid.UUID `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	CollectionID uuid.UUID `gorm:"type:uuid;not null;index;column:collection_id" json:"collection_id"`
	Prompt       string    `gorm:"uniqueIndex;not null;column:prompt" json:"prompt"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Stimulation) TableName() string {
	return "stimulation"
}
