package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/types"
)

type QuestionSetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sets []*types.QuestionSet) ([]*types.QuestionSet, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, setIDs []uuid.UUID) ([]*types.QuestionSet, error)
}

type questionSetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionSetRepo(db *gorm.DB, baseLog *logger.Logger) QuestionSetRepo {
	return &questionSetRepo{db: db, log: baseLog.With("repo", "QuestionSetRepo")}
}

func (r *questionSetRepo) Create(ctx context.Context, tx *gorm.DB, sets []*types.QuestionSet) ([]*types.QuestionSet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sets) == 0 {
		return []*types.QuestionSet{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *questionSetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, setIDs []uuid.UUID) ([]*types.QuestionSet, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QuestionSet
	if len(setIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", setIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type QuestionThemeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, themes []*types.QuestionTheme) ([]*types.QuestionTheme, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, themeIDs []uuid.UUID) ([]*types.QuestionTheme, error)
}

type questionThemeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionThemeRepo(db *gorm.DB, baseLog *logger.Logger) QuestionThemeRepo {
	return &questionThemeRepo{db: db, log: baseLog.With("repo", "QuestionThemeRepo")}
}

func (r *questionThemeRepo) Create(ctx context.Context, tx *gorm.DB, themes []*types.QuestionTheme) ([]*types.QuestionTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(themes) == 0 {
		return []*types.QuestionTheme{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *questionThemeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, themeIDs []uuid.UUID) ([]*types.QuestionTheme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.QuestionTheme
	if len(themeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", themeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
