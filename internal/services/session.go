package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/types"
)

type SessionService interface {
	CreateSession(ctx context.Context, session *types.Session) (*types.Session, error)
	// Reads are scoped to the caller's company: session ids of other
	// tenants read as not found.
	GetSession(ctx context.Context, companyID, sessionID uuid.UUID) (*types.Session, error)
	ListQuestions(ctx context.Context, companyID, sessionID uuid.UUID) ([]*types.Question, error)
}

type sessionService struct {
	db           *gorm.DB
	log          *logger.Logger
	sessionRepo  repos.SessionRepo
	setRepo      repos.QuestionSetRepo
	themeRepo    repos.QuestionThemeRepo
	questionRepo repos.QuestionRepo
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.SessionRepo, setRepo repos.QuestionSetRepo, themeRepo repos.QuestionThemeRepo, questionRepo repos.QuestionRepo) SessionService {
	return &sessionService{
		db:           db,
		log:          log.With("service", "SessionService"),
		sessionRepo:  sessionRepo,
		setRepo:      setRepo,
		themeRepo:    themeRepo,
		questionRepo: questionRepo,
	}
}

// validateSessionWindow checks the fielding window against the wall clock at
// creation time: chronological and not starting in the past, no matter what
// until says.
func validateSessionWindow(start, until, now time.Time) error {
	if !start.Before(until) {
		return ErrSessionChronology
	}
	if start.Before(now) {
		return ErrSessionStartsInPast
	}
	return nil
}

func (s *sessionService) CreateSession(ctx context.Context, session *types.Session) (*types.Session, error) {
	if session == nil {
		return nil, fmt.Errorf("session required")
	}
	if err := validateSessionWindow(session.Start, session.Until, time.Now().UTC()); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sets, err := s.setRepo.GetByIDs(ctx, tx, []uuid.UUID{session.SetID})
		if err != nil {
			return fmt.Errorf("load question set: %w", err)
		}
		if len(sets) == 0 {
			return ErrNotFound
		}

		themes, err := s.themeRepo.GetByIDs(ctx, tx, []uuid.UUID{session.ThemeID})
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		if len(themes) == 0 {
			return ErrNotFound
		}

		exists, err := s.sessionRepo.ExistsForCompanyTheme(ctx, tx, session.CompanyID, session.ThemeID)
		if err != nil {
			return fmt.Errorf("check company theme: %w", err)
		}
		if exists {
			return ErrThemeSessionExists
		}

		session.ID = uuid.New()
		if _, err := s.sessionRepo.Create(ctx, tx, []*types.Session{session}); err != nil {
			if isUniqueViolation(err) {
				return ErrThemeSessionExists
			}
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetSession(ctx context.Context, companyID, sessionID uuid.UUID) (*types.Session, error) {
	sessions, err := s.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(sessions) == 0 || sessions[0].CompanyID != companyID {
		return nil, ErrNotFound
	}
	return sessions[0], nil
}

// ListQuestions returns the questions of the session's set, for clients
// rendering the survey form.
func (s *sessionService) ListQuestions(ctx context.Context, companyID, sessionID uuid.UUID) ([]*types.Question, error) {
	session, err := s.GetSession(ctx, companyID, sessionID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.GetBySetIDs(ctx, nil, []uuid.UUID{session.SetID})
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
