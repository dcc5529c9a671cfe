package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/repos/testutil"
)

func newSessionServiceForTest(t *testing.T, tx *gorm.DB) SessionService {
	t.Helper()
	log := testutil.Logger(t)
	return NewSessionService(
		tx,
		log,
		repos.NewSessionRepo(tx, log),
		repos.NewQuestionSetRepo(tx, log),
		repos.NewQuestionThemeRepo(tx, log),
		repos.NewQuestionRepo(tx, log),
	)
}

func TestGetSessionScopedToCompany(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newSessionServiceForTest(t, tx)

	company := testutil.SeedCompany(t, tx)
	other := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, _ := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	got, err := svc.GetSession(ctx, company.ID, session.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("got session %s, want %s", got.ID, session.ID)
	}

	if _, err := svc.GetSession(ctx, other.ID, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-company read: got %v, want ErrNotFound", err)
	}
	if _, err := svc.GetSession(ctx, company.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown session: got %v, want ErrNotFound", err)
	}
}

func TestListQuestions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newSessionServiceForTest(t, tx)

	company := testutil.SeedCompany(t, tx)
	other := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	questions, err := svc.ListQuestions(ctx, company.ID, session.ID)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != question.ID {
		t.Fatalf("got %d questions, want the set's single question", len(questions))
	}

	if _, err := svc.ListQuestions(ctx, other.ID, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-company read: got %v, want ErrNotFound", err)
	}
}
