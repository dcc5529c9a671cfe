package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/repos/testutil"
	"github.com/teamtempo/engage-backend/internal/types"
)

func newAnalyticsServiceForTest(t *testing.T, tx *gorm.DB) AnalyticsService {
	t.Helper()
	log := testutil.Logger(t)
	return NewAnalyticsService(
		tx,
		log,
		repos.NewSessionRepo(tx, log),
		repos.NewQuestionSetRepo(tx, log),
		repos.NewQuestionThemeRepo(tx, log),
		repos.NewCompanyRepo(tx, log),
		repos.NewAnsweredRepo(tx, log),
	)
}

func TestSessionChartNullWithoutData(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnalyticsServiceForTest(t, tx)

	company := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, _ := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	point, err := svc.SessionChart(ctx, company.ID, session.ID)
	if err != nil {
		t.Fatalf("SessionChart: %v", err)
	}
	// No answers yet: the value is null, never zero.
	if point.Value != nil {
		t.Fatalf("expected nil value for empty session, got %v", *point.Value)
	}
	if point.Date == nil {
		t.Fatalf("expected a date even without data")
	}
}

func TestSessionChartMeanTimesSetWeight(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnalyticsServiceForTest(t, tx)
	answeredRepo := repos.NewAnsweredRepo(tx, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	for _, v := range []float64{50, 100} {
		user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
		record := &types.AnsweredRecord{
			ID:         uuid.New(),
			Value:      v,
			AnswererID: user.ID,
			QuestionID: question.ID,
			SessionID:  session.ID,
		}
		if _, err := answeredRepo.Create(ctx, tx, []*types.AnsweredRecord{record}); err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}

	point, err := svc.SessionChart(ctx, company.ID, session.ID)
	if err != nil {
		t.Fatalf("SessionChart: %v", err)
	}
	if point.Value == nil || *point.Value != 75 {
		t.Fatalf("session value = %v, want 75", point.Value)
	}
}

func TestSessionChartScopedToCompany(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnalyticsServiceForTest(t, tx)

	company := testutil.SeedCompany(t, tx)
	other := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, _ := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	// A caller from another company must not see the session's aggregate;
	// the id reads as if it did not exist.
	if _, err := svc.SessionChart(ctx, other.ID, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-company read: got %v, want ErrNotFound", err)
	}
	if _, err := svc.SessionChart(ctx, company.ID, session.ID); err != nil {
		t.Fatalf("same-company read: %v", err)
	}
}

func TestCompanyChart(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnalyticsServiceForTest(t, tx)
	answeredRepo := repos.NewAnsweredRepo(tx, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)

	point, err := svc.CompanyChart(ctx, company.ID)
	if err != nil {
		t.Fatalf("CompanyChart (no sessions): %v", err)
	}
	if point.Value != nil {
		t.Fatalf("expected nil value without sessions, got %v", *point.Value)
	}

	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	point, err = svc.CompanyChart(ctx, company.ID)
	if err != nil {
		t.Fatalf("CompanyChart (no answers): %v", err)
	}
	if point.Value != nil {
		t.Fatalf("expected nil value without answers, got %v", *point.Value)
	}

	user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
	record := &types.AnsweredRecord{
		ID:         uuid.New(),
		Value:      80,
		AnswererID: user.ID,
		QuestionID: question.ID,
		SessionID:  session.ID,
	}
	if _, err := answeredRepo.Create(ctx, tx, []*types.AnsweredRecord{record}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	point, err = svc.CompanyChart(ctx, company.ID)
	if err != nil {
		t.Fatalf("CompanyChart: %v", err)
	}
	// One theme, set weight 1 and theme weight 1: the rollup is the plain
	// session mean.
	if point.Value == nil || *point.Value != 80 {
		t.Fatalf("company value = %v, want 80", point.Value)
	}

	_, err = svc.CompanyChart(ctx, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown company: got %v, want ErrNotFound", err)
	}
}
