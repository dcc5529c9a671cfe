package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/types"
)

// CatalogService owns the answer catalog: collections of ordered options and
// their soft retirement.
type CatalogService interface {
	CreateCollection(ctx context.Context, collection *types.OptionCollection, options []*types.AnswerOption) (*types.OptionCollection, error)
	// ListValidOptions returns the non-retired options of a collection in
	// ascending rank order.
	ListValidOptions(ctx context.Context, collectionID uuid.UUID) ([]*types.AnswerOption, error)
	// RetireOption soft-invalidates an option. Retiring twice is a no-op,
	// not an error; existing answer records are never touched.
	RetireOption(ctx context.Context, optionID uuid.UUID) error
}

type catalogService struct {
	db             *gorm.DB
	log            *logger.Logger
	collectionRepo repos.OptionCollectionRepo
	optionRepo     repos.AnswerOptionRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, collectionRepo repos.OptionCollectionRepo, optionRepo repos.AnswerOptionRepo) CatalogService {
	return &catalogService{
		db:             db,
		log:            log.With("service", "CatalogService"),
		collectionRepo: collectionRepo,
		optionRepo:     optionRepo,
	}
}

func (s *catalogService) CreateCollection(ctx context.Context, collection *types.OptionCollection, options []*types.AnswerOption) (*types.OptionCollection, error) {
	if collection == nil {
		return nil, fmt.Errorf("collection required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collection.ID = uuid.New()
		if _, err := s.collectionRepo.Create(ctx, tx, []*types.OptionCollection{collection}); err != nil {
			return fmt.Errorf("create collection: %w", err)
		}
		for _, option := range options {
			option.ID = uuid.New()
			option.CollectionID = collection.ID
		}
		if _, err := s.optionRepo.Create(ctx, tx, options); err != nil {
			return fmt.Errorf("create options: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *catalogService) ListValidOptions(ctx context.Context, collectionID uuid.UUID) ([]*types.AnswerOption, error) {
	collections, err := s.collectionRepo.GetByIDs(ctx, nil, []uuid.UUID{collectionID})
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if len(collections) == 0 {
		return nil, ErrNotFound
	}
	return s.optionRepo.ListValidByCollection(ctx, nil, collectionID)
}

func (s *catalogService) RetireOption(ctx context.Context, optionID uuid.UUID) error {
	err := s.optionRepo.Retire(ctx, nil, optionID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("retire option: %w", err)
	}
	return nil
}
