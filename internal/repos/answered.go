package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/types"
)

// AnsweredRepo persists answer records. Records are write-once: there is no
// update or delete method on purpose.
type AnsweredRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.AnsweredRecord) ([]*types.AnsweredRecord, error)
	Exists(ctx context.Context, tx *gorm.DB, answererID, questionID, sessionID uuid.UUID) (bool, error)
	ValuesBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]float64, error)
}

type answeredRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnsweredRepo(db *gorm.DB, baseLog *logger.Logger) AnsweredRepo {
	return &answeredRepo{db: db, log: baseLog.With("repo", "AnsweredRepo")}
}

func (r *answeredRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.AnsweredRecord) ([]*types.AnsweredRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return []*types.AnsweredRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *answeredRepo) Exists(ctx context.Context, tx *gorm.DB, answererID, questionID, sessionID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AnsweredRecord{}).
		Where("answerer_id = ? AND question_id = ? AND session_id = ?", answererID, questionID, sessionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *answeredRepo) ValuesBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var values []float64
	if err := transaction.WithContext(ctx).
		Model(&types.AnsweredRecord{}).
		Where("session_id = ?", sessionID).
		Pluck("value", &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
