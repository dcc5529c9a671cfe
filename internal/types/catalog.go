package types

import (
	"time"

	"github.com/google/uuid"
)

// AnswerStyle tells the frontend how to render the collection's options.
type AnswerStyle string

const (
	AnswerStyleRadio AnswerStyle = "radio"
	AnswerStyleSlide AnswerStyle = "slide"
	AnswerStylePlain AnswerStyle = "plain"
)

// OptionCollection is a named, ordered set of selectable answers shared by
// one or more questions.
type OptionCollection struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Label     string      `gorm:"uniqueIndex;not null;column:label" json:"label"`
	Style     AnswerStyle `gorm:"not null;default:radio;column:style" json:"style"`
	CreatedAt time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (OptionCollection) TableName() string {
	return "option_collection"
}

// AnswerOption is one selectable option of a collection. Rank defines the
// ordering and is unique within the collection, as is the label. Retiring
// sets RetiredAt instead of deleting so historical records keep resolving.
type AnswerOption struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CollectionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_option_rank,priority:1;uniqueIndex:idx_option_label,priority:1;column:collection_id" json:"collection_id"`
	Label        string     `gorm:"not null;uniqueIndex:idx_option_label,priority:2;column:label" json:"label"`
	Rank         int        `gorm:"not null;check:rank >= 0;uniqueIndex:idx_option_rank,priority:2;column:rank" json:"rank"`
	RetiredAt    *time.Time `gorm:"column:retired_at" json:"retired_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (AnswerOption) TableName() string {
	return "answer_option"
}
