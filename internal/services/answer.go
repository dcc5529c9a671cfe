package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/sse"
	"github.com/teamtempo/engage-backend/internal/types"
)

// AnswerService creates the single, immutable answer record for a
// (user, question, session) triple. The stored value is a point-in-time
// snapshot: later catalog changes never rewrite it.
type AnswerService interface {
	RecordAnswer(ctx context.Context, userID, questionID, sessionID, optionID uuid.UUID) (*types.AnsweredRecord, error)
	RecordStimulationAnswer(ctx context.Context, userID, stimulationID, optionID uuid.UUID) (*types.StimulationRecord, error)
}

type answerService struct {
	db              *gorm.DB
	log             *logger.Logger
	sessionRepo     repos.SessionRepo
	memberRepo      repos.MemberRepo
	questionRepo    repos.QuestionRepo
	optionRepo      repos.AnswerOptionRepo
	userMetaTagRepo repos.UserMetaTagRepo
	answeredRepo    repos.AnsweredRepo
	stimulationRepo repos.StimulationRepo
	stimRecordRepo  repos.StimulationRecordRepo
	chartBus        sse.Publisher
}

func NewAnswerService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	memberRepo repos.MemberRepo,
	questionRepo repos.QuestionRepo,
	optionRepo repos.AnswerOptionRepo,
	userMetaTagRepo repos.UserMetaTagRepo,
	answeredRepo repos.AnsweredRepo,
	stimulationRepo repos.StimulationRepo,
	stimRecordRepo repos.StimulationRecordRepo,
	chartBus sse.Publisher,
) AnswerService {
	return &answerService{
		db:              db,
		log:             log.With("service", "AnswerService"),
		sessionRepo:     sessionRepo,
		memberRepo:      memberRepo,
		questionRepo:    questionRepo,
		optionRepo:      optionRepo,
		userMetaTagRepo: userMetaTagRepo,
		answeredRepo:    answeredRepo,
		stimulationRepo: stimulationRepo,
		stimRecordRepo:  stimRecordRepo,
		chartBus:        chartBus,
	}
}

// sessionAliveAt: alive means now is within [start, until).
func sessionAliveAt(session *types.Session, now time.Time) bool {
	return !now.Before(session.Start) && now.Before(session.Until)
}

func (s *answerService) RecordAnswer(ctx context.Context, userID, questionID, sessionID, optionID uuid.UUID) (*types.AnsweredRecord, error) {
	var record *types.AnsweredRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		sessions, err := s.sessionRepo.GetByIDs(ctx, tx, []uuid.UUID{sessionID})
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if len(sessions) == 0 {
			return ErrNotFound
		}
		session := sessions[0]
		if !sessionAliveAt(session, now) {
			return ErrSessionNotAlive
		}

		member, err := s.memberRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}
		if member == nil {
			return ErrNotFound
		}
		if member.CompanyID != session.CompanyID {
			return ErrCompanyMismatch
		}

		questions, err := s.questionRepo.GetByIDs(ctx, tx, []uuid.UUID{questionID})
		if err != nil {
			return fmt.Errorf("load question: %w", err)
		}
		if len(questions) == 0 {
			return ErrNotFound
		}
		question := questions[0]
		if question.SetID != session.SetID {
			return ErrQuestionNotInSession
		}

		options, err := s.optionRepo.GetByIDs(ctx, tx, []uuid.UUID{optionID})
		if err != nil {
			return fmt.Errorf("load option: %w", err)
		}
		if len(options) == 0 {
			return ErrNotFound
		}
		option := options[0]
		if option.CollectionID != question.CollectionID {
			return ErrOptionNotApplicable
		}

		exists, err := s.answeredRepo.Exists(ctx, tx, userID, questionID, sessionID)
		if err != nil {
			return fmt.Errorf("check existing record: %w", err)
		}
		if exists {
			return ErrDuplicateAnswer
		}

		// Valid-option snapshot for the whole scoring call; a concurrent
		// retire after this point does not change the outcome.
		valid, err := s.optionRepo.ListValidByCollection(ctx, tx, question.CollectionID)
		if err != nil {
			return fmt.Errorf("load valid options: %w", err)
		}
		raw, err := RelativeValue(valid, option)
		if err != nil {
			return err
		}

		tagWeights, err := s.userMetaTagRepo.WeightsForUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load meta tag weights: %w", err)
		}
		weight := ResolveWeight(tagWeights, question.Weight)

		record = &types.AnsweredRecord{
			ID:         uuid.New(),
			Value:      raw * weight,
			OptionID:   &option.ID,
			AnswererID: userID,
			QuestionID: questionID,
			SessionID:  sessionID,
		}
		if _, err := s.answeredRepo.Create(ctx, tx, []*types.AnsweredRecord{record}); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateAnswer
			}
			return fmt.Errorf("create answer record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyChartInvalidated(ctx, record.SessionID)
	return record, nil
}

func (s *answerService) RecordStimulationAnswer(ctx context.Context, userID, stimulationID, optionID uuid.UUID) (*types.StimulationRecord, error) {
	var record *types.StimulationRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		stimulations, err := s.stimulationRepo.GetByIDs(ctx, tx, []uuid.UUID{stimulationID})
		if err != nil {
			return fmt.Errorf("load stimulation: %w", err)
		}
		if len(stimulations) == 0 {
			return ErrNotFound
		}
		stimulation := stimulations[0]

		sessions, err := s.sessionRepo.GetByIDs(ctx, tx, []uuid.UUID{stimulation.SessionID})
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if len(sessions) == 0 {
			return ErrNotFound
		}
		session := sessions[0]
		if !sessionAliveAt(session, now) {
			return ErrSessionNotAlive
		}

		member, err := s.memberRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}
		if member == nil {
			return ErrNotFound
		}
		if member.CompanyID != session.CompanyID {
			return ErrCompanyMismatch
		}

		options, err := s.optionRepo.GetByIDs(ctx, tx, []uuid.UUID{optionID})
		if err != nil {
			return fmt.Errorf("load option: %w", err)
		}
		if len(options) == 0 {
			return ErrNotFound
		}
		option := options[0]
		if option.CollectionID != stimulation.CollectionID {
			return ErrOptionNotApplicable
		}

		exists, err := s.stimRecordRepo.Exists(ctx, tx, userID, stimulationID)
		if err != nil {
			return fmt.Errorf("check existing record: %w", err)
		}
		if exists {
			return ErrDuplicateAnswer
		}

		valid, err := s.optionRepo.ListValidByCollection(ctx, tx, stimulation.CollectionID)
		if err != nil {
			return fmt.Errorf("load valid options: %w", err)
		}
		// Stimulations are the playful closer of a session; they store the
		// raw relative value without any metadata weighting.
		raw, err := RelativeValue(valid, option)
		if err != nil {
			return err
		}

		record = &types.StimulationRecord{
			ID:            uuid.New(),
			Value:         raw,
			OptionID:      &option.ID,
			AnswererID:    userID,
			StimulationID: stimulationID,
		}
		if _, err := s.stimRecordRepo.Create(ctx, tx, []*types.StimulationRecord{record}); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateAnswer
			}
			return fmt.Errorf("create stimulation record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// notifyChartInvalidated is best-effort: a lost notification only delays a
// dashboard refresh, it never affects the stored record.
func (s *answerService) notifyChartInvalidated(ctx context.Context, sessionID uuid.UUID) {
	if s.chartBus == nil {
		return
	}
	sessions, err := s.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil || len(sessions) == 0 {
		return
	}
	msg := sse.Message{
		Channel: sse.CompanyChannel(sessions[0].CompanyID),
		Event:   sse.EventChartInvalidated,
		Data:    map[string]any{"session_id": sessionID},
	}
	if err := s.chartBus.Publish(ctx, msg); err != nil {
		s.log.Warn("Chart invalidation publish failed", "sessionID", sessionID, "error", err)
	}
}
