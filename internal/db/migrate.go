package db

import (
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + membership
		&types.User{},
		&types.UserToken{},
		&types.Company{},
		&types.Member{},

		// Answer catalog
		&types.OptionCollection{},
		&types.AnswerOption{},

		// Question structure
		&types.QuestionTheme{},
		&types.QuestionSet{},
		&types.Question{},
		&types.Stimulation{},

		// Fielding + responses
		&types.Session{},
		&types.AnsweredRecord{},
		&types.StimulationRecord{},

		// Per-user weighting metadata
		&types.MetaCategory{},
		&types.UserMetaTag{},

		// Reflection side channel
		&types.Reflection{},
		&types.OutboundMail{},
	)
}

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
