package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/types"
)

type ReflectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reflections []*types.Reflection) ([]*types.Reflection, error)
}

type reflectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReflectionRepo(db *gorm.DB, baseLog *logger.Logger) ReflectionRepo {
	return &reflectionRepo{db: db, log: baseLog.With("repo", "ReflectionRepo")}
}

func (r *reflectionRepo) Create(ctx context.Context, tx *gorm.DB, reflections []*types.Reflection) ([]*types.Reflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(reflections) == 0 {
		return []*types.Reflection{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&reflections).Error; err != nil {
		return nil, err
	}
	return reflections, nil
}

type OutboundMailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mails []*types.OutboundMail) ([]*types.OutboundMail, error)
	MarkSent(ctx context.Context, tx *gorm.DB, mail *types.OutboundMail, sentAt time.Time) error
	MarkFailed(ctx context.Context, tx *gorm.DB, mail *types.OutboundMail) error
}

type outboundMailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutboundMailRepo(db *gorm.DB, baseLog *logger.Logger) OutboundMailRepo {
	return &outboundMailRepo{db: db, log: baseLog.With("repo", "OutboundMailRepo")}
}

func (r *outboundMailRepo) Create(ctx context.Context, tx *gorm.DB, mails []*types.OutboundMail) ([]*types.OutboundMail, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mails) == 0 {
		return []*types.OutboundMail{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&mails).Error; err != nil {
		return nil, err
	}
	return mails, nil
}

func (r *outboundMailRepo) MarkSent(ctx context.Context, tx *gorm.DB, mail *types.OutboundMail, sentAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(mail).
		Updates(map[string]interface{}{"status": "sent", "sent_at": sentAt}).Error
}

func (r *outboundMailRepo) MarkFailed(ctx context.Context, tx *gorm.DB, mail *types.OutboundMail) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(mail).
		Update("status", "failed").Error
}
