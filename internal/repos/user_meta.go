package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/types"
)

type MetaCategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.MetaCategory) ([]*types.MetaCategory, error)
	GetByCompanyID(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.MetaCategory, error)
}

type metaCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMetaCategoryRepo(db *gorm.DB, baseLog *logger.Logger) MetaCategoryRepo {
	return &metaCategoryRepo{db: db, log: baseLog.With("repo", "MetaCategoryRepo")}
}

func (r *metaCategoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.MetaCategory) ([]*types.MetaCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(categories) == 0 {
		return []*types.MetaCategory{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *metaCategoryRepo) GetByCompanyID(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.MetaCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MetaCategory
	if err := transaction.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type UserMetaTagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tags []*types.UserMetaTag) ([]*types.UserMetaTag, error)
	// WeightsForUser returns the weights of every tag currently linked to
	// the user, ordered by tag id so the result is stable.
	WeightsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]float64, error)
	Unlink(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) error
}

type userMetaTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserMetaTagRepo(db *gorm.DB, baseLog *logger.Logger) UserMetaTagRepo {
	return &userMetaTagRepo{db: db, log: baseLog.With("repo", "UserMetaTagRepo")}
}

func (r *userMetaTagRepo) Create(ctx context.Context, tx *gorm.DB, tags []*types.UserMetaTag) ([]*types.UserMetaTag, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tags) == 0 {
		return []*types.UserMetaTag{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *userMetaTagRepo) WeightsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var weights []float64
	if err := transaction.WithContext(ctx).
		Model(&types.UserMetaTag{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("weight", &weights).Error; err != nil {
		return nil, err
	}
	return weights, nil
}

// Unlink severs the user link but keeps the tag row and its weight, so
// inputs that fed historical scores stay on record.
func (r *userMetaTagRepo) Unlink(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserMetaTag{}).
		Where("id = ?", tagID).
		Update("user_id", nil).Error
}
