package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/types"
)

type StimulationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stimulations []*types.Stimulation) ([]*types.Stimulation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, stimulationIDs []uuid.UUID) ([]*types.Stimulation, error)
}

type stimulationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStimulationRepo(db *gorm.DB, baseLog *logger.Logger) StimulationRepo {
	return &stimulationRepo{db: db, log: baseLog.With("repo", "StimulationRepo")}
}

func (r *stimulationRepo) Create(ctx context.Context, tx *gorm.DB, stimulations []*types.Stimulation) ([]*types.Stimulation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(stimulations) == 0 {
		return []*types.Stimulation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&stimulations).Error; err != nil {
		return nil, err
	}
	return stimulations, nil
}

func (r *stimulationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, stimulationIDs []uuid.UUID) ([]*types.Stimulation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Stimulation
	if len(stimulationIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", stimulationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type StimulationRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.StimulationRecord) ([]*types.StimulationRecord, error)
	Exists(ctx context.Context, tx *gorm.DB, answererID, stimulationID uuid.UUID) (bool, error)
}

type stimulationRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStimulationRecordRepo(db *gorm.DB, baseLog *logger.Logger) StimulationRecordRepo {
	return &stimulationRecordRepo{db: db, log: baseLog.With("repo", "StimulationRecordRepo")}
}

func (r *stimulationRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.StimulationRecord) ([]*types.StimulationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(records) == 0 {
		return []*types.StimulationRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *stimulationRecordRepo) Exists(ctx context.Context, tx *gorm.DB, answererID, stimulationID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.StimulationRecord{}).
		Where("answerer_id = ? AND stimulation_id = ?", answererID, stimulationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
