package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/repos/testutil"
	"github.com/teamtempo/engage-backend/internal/types"
)

func TestAnsweredRepoWriteOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewAnsweredRepo(db, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	record := &types.AnsweredRecord{
		ID:         uuid.New(),
		Value:      67,
		OptionID:   &options[1].ID,
		AnswererID: user.ID,
		QuestionID: question.ID,
		SessionID:  session.ID,
	}
	if _, err := repo.Create(ctx, tx, []*types.AnsweredRecord{record}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := repo.Exists(ctx, tx, user.ID, question.ID, session.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists: expected true after create")
	}

	// The unique index is the authority: a second insert for the same
	// (answerer, question, session) must fail.
	dup := &types.AnsweredRecord{
		ID:         uuid.New(),
		Value:      100,
		OptionID:   &options[2].ID,
		AnswererID: user.ID,
		QuestionID: question.ID,
		SessionID:  session.ID,
	}
	if _, err := repo.Create(ctx, tx, []*types.AnsweredRecord{dup}); err == nil {
		t.Fatalf("Create duplicate: expected unique violation, got nil")
	}
}

func TestAnsweredRepoValuesBySession(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewAnsweredRepo(db, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, question := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
	session := testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	values, err := repo.ValuesBySession(ctx, tx, session.ID)
	if err != nil {
		t.Fatalf("ValuesBySession (empty): %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values for fresh session, got %v", values)
	}

	for _, v := range []float64{34, 67, 100} {
		user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)
		record := &types.AnsweredRecord{
			ID:         uuid.New(),
			Value:      v,
			AnswererID: user.ID,
			QuestionID: question.ID,
			SessionID:  session.ID,
		}
		if _, err := repo.Create(ctx, tx, []*types.AnsweredRecord{record}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	values, err = repo.ValuesBySession(ctx, tx, session.ID)
	if err != nil {
		t.Fatalf("ValuesBySession: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum != 201 {
		t.Fatalf("expected value sum 201, got %v", sum)
	}
}
