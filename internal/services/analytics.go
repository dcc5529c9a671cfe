package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/types"
)

// ChartPoint is one aggregate reading: a weighted value and the timestamp it
// represents. Value is nil when no answers exist yet; "no data" is a state
// of its own and is never coerced to zero.
type ChartPoint struct {
	Value *float64   `json:"value"`
	Date  *time.Time `json:"date"`
}

// AnalyticsService recomputes chart aggregates from raw answer records on
// every call. There is no rollup table and nothing here ever writes.
type AnalyticsService interface {
	// SessionChart is scoped to the caller's company: a session id from
	// another tenant reads as not found.
	SessionChart(ctx context.Context, companyID, sessionID uuid.UUID) (*ChartPoint, error)
	CompanyChart(ctx context.Context, companyID uuid.UUID) (*ChartPoint, error)
}

type analyticsService struct {
	db           *gorm.DB
	log          *logger.Logger
	sessionRepo  repos.SessionRepo
	setRepo      repos.QuestionSetRepo
	themeRepo    repos.QuestionThemeRepo
	companyRepo  repos.CompanyRepo
	answeredRepo repos.AnsweredRepo
}

func NewAnalyticsService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	setRepo repos.QuestionSetRepo,
	themeRepo repos.QuestionThemeRepo,
	companyRepo repos.CompanyRepo,
	answeredRepo repos.AnsweredRepo,
) AnalyticsService {
	return &analyticsService{
		db:           db,
		log:          log.With("service", "AnalyticsService"),
		sessionRepo:  sessionRepo,
		setRepo:      setRepo,
		themeRepo:    themeRepo,
		companyRepo:  companyRepo,
		answeredRepo: answeredRepo,
	}
}

// sessionValue is mean(values) * setWeight, or nil when there are no values.
func sessionValue(values []float64, setWeight float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	result := sum / float64(len(values)) * setWeight
	return &result
}

// chartDate is the session end once it has passed; an in-progress session
// contributes a live, provisional point stamped with now.
func chartDate(until, now time.Time) time.Time {
	if !until.After(now) {
		return until
	}
	return now
}

// latestSessionPerTheme reduces a newest-first session list to the most
// recent session of each theme.
func latestSessionPerTheme(sessions []*types.Session) []*types.Session {
	seen := make(map[uuid.UUID]bool, len(sessions))
	var result []*types.Session
	for _, session := range sessions {
		if seen[session.ThemeID] {
			continue
		}
		seen[session.ThemeID] = true
		result = append(result, session)
	}
	return result
}

func (s *analyticsService) SessionChart(ctx context.Context, companyID, sessionID uuid.UUID) (*ChartPoint, error) {
	sessions, err := s.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(sessions) == 0 {
		return nil, ErrNotFound
	}
	session := sessions[0]
	if session.CompanyID != companyID {
		// Not found rather than forbidden: ids of other tenants do not exist
		// as far as the caller is concerned.
		return nil, ErrNotFound
	}

	sets, err := s.setRepo.GetByIDs(ctx, nil, []uuid.UUID{session.SetID})
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	if len(sets) == 0 {
		return nil, ErrNotFound
	}

	values, err := s.answeredRepo.ValuesBySession(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load answer values: %w", err)
	}

	date := chartDate(session.Until, time.Now().UTC())
	return &ChartPoint{
		Value: sessionValue(values, sets[0].Weight),
		Date:  &date,
	}, nil
}

func (s *analyticsService) CompanyChart(ctx context.Context, companyID uuid.UUID) (*ChartPoint, error) {
	companies, err := s.companyRepo.GetByIDs(ctx, nil, []uuid.UUID{companyID})
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	if len(companies) == 0 {
		return nil, ErrNotFound
	}

	allSessions, err := s.sessionRepo.GetByCompany(ctx, nil, companyID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	sessions := latestSessionPerTheme(allSessions)
	if len(sessions) == 0 {
		return &ChartPoint{}, nil
	}

	themeIDs := make([]uuid.UUID, 0, len(sessions))
	setIDs := make([]uuid.UUID, 0, len(sessions))
	for _, session := range sessions {
		themeIDs = append(themeIDs, session.ThemeID)
		setIDs = append(setIDs, session.SetID)
	}
	themes, err := s.themeRepo.GetByIDs(ctx, nil, themeIDs)
	if err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}
	themeWeights := make(map[uuid.UUID]float64, len(themes))
	for _, theme := range themes {
		themeWeights[theme.ID] = theme.Weight
	}
	sets, err := s.setRepo.GetByIDs(ctx, nil, setIDs)
	if err != nil {
		return nil, fmt.Errorf("load question sets: %w", err)
	}
	setWeights := make(map[uuid.UUID]float64, len(sets))
	for _, set := range sets {
		setWeights[set.ID] = set.Weight
	}

	now := time.Now().UTC()

	var mu sync.Mutex
	total := 0.0
	haveData := false
	var latestEnded *time.Time

	group, groupCtx := errgroup.WithContext(ctx)
	for _, session := range sessions {
		session := session
		group.Go(func() error {
			values, err := s.answeredRepo.ValuesBySession(groupCtx, nil, session.ID)
			if err != nil {
				return fmt.Errorf("load answer values for session %s: %w", session.ID, err)
			}
			value := sessionValue(values, setWeights[session.SetID])
			if value == nil {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			// Theme weight is applied exactly once, here at the company
			// rollup; the session value itself carries only the set weight.
			total += *value * themeWeights[session.ThemeID]
			haveData = true
			if session.Until.Before(now) {
				if latestEnded == nil || session.Until.After(*latestEnded) {
					until := session.Until
					latestEnded = &until
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if !haveData {
		return &ChartPoint{}, nil
	}
	date := now
	if latestEnded != nil {
		date = *latestEnded
	}
	return &ChartPoint{Value: &total, Date: &date}, nil
}
