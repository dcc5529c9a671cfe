package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/types"
)

type OptionCollectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, collections []*types.OptionCollection) ([]*types.OptionCollection, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, collectionIDs []uuid.UUID) ([]*types.OptionCollection, error)
}

type optionCollectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOptionCollectionRepo(db *gorm.DB, baseLog *logger.Logger) OptionCollectionRepo {
	return &optionCollectionRepo{db: db, log: baseLog.With("repo", "OptionCollectionRepo")}
}

func (r *optionCollectionRepo) Create(ctx context.Context, tx *gorm.DB, collections []*types.OptionCollection) ([]*types.OptionCollection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(collections) == 0 {
		return []*types.OptionCollection{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *optionCollectionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, collectionIDs []uuid.UUID) ([]*types.OptionCollection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.OptionCollection
	if len(collectionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", collectionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type AnswerOptionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, options []*types.AnswerOption) ([]*types.AnswerOption, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, optionIDs []uuid.UUID) ([]*types.AnswerOption, error)
	// ListValidByCollection returns the non-retired options of a collection
	// in ascending rank order.
	ListValidByCollection(ctx context.Context, tx *gorm.DB, collectionID uuid.UUID) ([]*types.AnswerOption, error)
	// Retire marks the option retired at now. Retiring an already retired
	// option leaves the original timestamp untouched.
	Retire(ctx context.Context, tx *gorm.DB, optionID uuid.UUID, now time.Time) error
}

type answerOptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerOptionRepo(db *gorm.DB, baseLog *logger.Logger) AnswerOptionRepo {
	return &answerOptionRepo{db: db, log: baseLog.With("repo", "AnswerOptionRepo")}
}

func (r *answerOptionRepo) Create(ctx context.Context, tx *gorm.DB, options []*types.AnswerOption) ([]*types.AnswerOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(options) == 0 {
		return []*types.AnswerOption{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *answerOptionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, optionIDs []uuid.UUID) ([]*types.AnswerOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AnswerOption
	if len(optionIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", optionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *answerOptionRepo) ListValidByCollection(ctx context.Context, tx *gorm.DB, collectionID uuid.UUID) ([]*types.AnswerOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AnswerOption
	if err := transaction.WithContext(ctx).
		Where("collection_id = ? AND retired_at IS NULL", collectionID).
		Order("rank ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *answerOptionRepo) Retire(ctx context.Context, tx *gorm.DB, optionID uuid.UUID, now time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var option types.AnswerOption
	err := transaction.WithContext(ctx).
		Where("id = ?", optionID).
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	res := transaction.WithContext(ctx).
		Model(&types.AnswerOption{}).
		Where("id = ? AND retired_at IS NULL", optionID).
		Update("retired_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Debug("Option already retired, keeping original timestamp", "optionID", optionID)
	}
	return nil
}
