package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/repos/testutil"
	"github.com/teamtempo/engage-backend/internal/types"
)

// newAnswerServiceForTest builds the service on the given handle. Most tests
// pass the per-test transaction so every row rolls back with the test and the
// service's own transactions run as savepoints inside it.
func newAnswerServiceForTest(t *testing.T, tx *gorm.DB) AnswerService {
	t.Helper()
	log := testutil.Logger(t)
	return NewAnswerService(
		tx,
		log,
		repos.NewSessionRepo(tx, log),
		repos.NewMemberRepo(tx, log),
		repos.NewQuestionRepo(tx, log),
		repos.NewAnswerOptionRepo(tx, log),
		repos.NewUserMetaTagRepo(tx, log),
		repos.NewAnsweredRepo(tx, log),
		repos.NewStimulationRepo(tx, log),
		repos.NewStimulationRecordRepo(tx, log),
		nil,
	)
}

func TestRecordAnswer(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnswerServiceForTest(t, tx)

	company := testutil.SeedCompany(t, tx)
	user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 2)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	record, err := svc.RecordAnswer(ctx, user.ID, question.ID, session.ID, options[1].ID)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	// Middle of three options scores 67; no tags, so the weight is the
	// question weight of 2.
	if record.Value != 134 {
		t.Fatalf("record value = %v, want 134", record.Value)
	}
	if record.OptionID == nil || *record.OptionID != options[1].ID {
		t.Fatalf("record option = %v, want %v", record.OptionID, options[1].ID)
	}

	_, err = svc.RecordAnswer(ctx, user.ID, question.ID, session.ID, options[2].ID)
	if !errors.Is(err, ErrDuplicateAnswer) {
		t.Fatalf("second answer: got %v, want ErrDuplicateAnswer", err)
	}
}

func TestRecordAnswerPreconditions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnswerServiceForTest(t, tx)

	company := testutil.SeedCompany(t, tx)
	user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	t.Run("unknown_session", func(t *testing.T) {
		_, err := svc.RecordAnswer(ctx, user.ID, question.ID, uuid.New(), options[0].ID)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("session_not_alive", func(t *testing.T) {
		endedTheme, endedSet, endedQuestion := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
		now := time.Now().UTC()
		ended := &types.Session{
			ID:        uuid.New(),
			SetID:     endedSet.ID,
			ThemeID:   endedTheme.ID,
			CompanyID: company.ID,
			Start:     now.Add(-2 * time.Hour),
			Until:     now.Add(-time.Hour),
		}
		if err := tx.Create(ended).Error; err != nil {
			t.Fatalf("seed ended session: %v", err)
		}
		_, err := svc.RecordAnswer(ctx, user.ID, endedQuestion.ID, ended.ID, options[0].ID)
		if !errors.Is(err, ErrSessionNotAlive) {
			t.Fatalf("got %v, want ErrSessionNotAlive", err)
		}
	})

	t.Run("company_mismatch", func(t *testing.T) {
		otherCompany := testutil.SeedCompany(t, tx)
		outsider, _ := testutil.SeedMember(t, tx, otherCompany.ID, types.RoleEmployee)
		_, err := svc.RecordAnswer(ctx, outsider.ID, question.ID, session.ID, options[0].ID)
		if !errors.Is(err, ErrCompanyMismatch) {
			t.Fatalf("got %v, want ErrCompanyMismatch", err)
		}
	})

	t.Run("question_not_in_session", func(t *testing.T) {
		_, _, strayQuestion := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
		_, err := svc.RecordAnswer(ctx, user.ID, strayQuestion.ID, session.ID, options[0].ID)
		if !errors.Is(err, ErrQuestionNotInSession) {
			t.Fatalf("got %v, want ErrQuestionNotInSession", err)
		}
	})

	t.Run("option_from_other_collection", func(t *testing.T) {
		_, strayOptions := testutil.SeedCollection(t, tx, 2)
		_, err := svc.RecordAnswer(ctx, user.ID, question.ID, session.ID, strayOptions[0].ID)
		if !errors.Is(err, ErrOptionNotApplicable) {
			t.Fatalf("got %v, want ErrOptionNotApplicable", err)
		}
	})
}

// TestRecordAnswerConcurrentDuplicate races two answers for the same
// (user, question, session) triple. The Exists precondition cannot see an
// uncommitted sibling transaction, so here the unique index is the authority:
// exactly one insert lands, the other maps the 23505 to ErrDuplicateAnswer.
// It runs on the shared test database because a single test transaction is
// one connection and cannot serve two goroutines.
func TestRecordAnswerConcurrentDuplicate(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	svc := newAnswerServiceForTest(t, db)

	company := testutil.SeedCompany(t, db)
	user, member := testutil.SeedMember(t, db, company.ID, types.RoleEmployee)
	collection, options := testutil.SeedCollection(t, db, 3)
	theme, set, question := testutil.SeedQuestionSet(t, db, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, db, company.ID, theme.ID, set.ID)

	t.Cleanup(func() {
		db.Where("session_id = ?", session.ID).Delete(&types.AnsweredRecord{})
		db.Delete(session)
		db.Delete(question)
		db.Delete(set)
		db.Delete(theme)
		db.Where("collection_id = ?", collection.ID).Delete(&types.AnswerOption{})
		db.Delete(collection)
		db.Delete(member)
		db.Delete(user)
		db.Delete(company)
	})

	start := make(chan struct{})
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.RecordAnswer(ctx, user.ID, question.ID, session.ID, options[0].ID)
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrDuplicateAnswer):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || duplicates != 1 {
		t.Fatalf("got %d successes and %d duplicates, want exactly one of each", successes, duplicates)
	}
}

func TestRecordAnswerRetiredOptionsDoNotRescoreHistory(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newAnswerServiceForTest(t, tx)
	optionRepo := repos.NewAnswerOptionRepo(tx, testutil.Logger(t))
	answeredRepo := repos.NewAnsweredRepo(tx, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
	_, options := testutil.SeedCollection(t, tx, 4)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	record, err := svc.RecordAnswer(ctx, user.ID, question.ID, session.ID, options[2].ID)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if record.Value != 75 {
		t.Fatalf("record value = %v, want 75", record.Value)
	}

	// Retiring an option afterwards must not rewrite the stored value.
	if err := optionRepo.Retire(ctx, tx, options[3].ID, time.Now().UTC()); err != nil {
		t.Fatalf("Retire: %v", err)
	}
	values, err := answeredRepo.ValuesBySession(ctx, tx, session.ID)
	if err != nil {
		t.Fatalf("ValuesBySession: %v", err)
	}
	if len(values) != 1 || values[0] != 75 {
		t.Fatalf("stored value changed after retire: %v", values)
	}
}
