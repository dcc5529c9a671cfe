package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/repos/testutil"
)

func TestAnswerOptionRepoListValidByCollection(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewAnswerOptionRepo(db, testutil.Logger(t))
	_, options := testutil.SeedCollection(t, tx, 4)

	valid, err := repo.ListValidByCollection(ctx, tx, options[0].CollectionID)
	if err != nil {
		t.Fatalf("ListValidByCollection: %v", err)
	}
	if len(valid) != 4 {
		t.Fatalf("expected 4 valid options, got %d", len(valid))
	}
	for i, option := range valid {
		if option.Rank != i+1 {
			t.Fatalf("position %d has rank %d, want ascending order", i, option.Rank)
		}
	}
}

func TestAnswerOptionRepoRetire(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewAnswerOptionRepo(db, testutil.Logger(t))
	_, options := testutil.SeedCollection(t, tx, 3)
	target := options[1]

	if err := repo.Retire(ctx, tx, target.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Retire: %v", err)
	}

	valid, err := repo.ListValidByCollection(ctx, tx, target.CollectionID)
	if err != nil {
		t.Fatalf("ListValidByCollection: %v", err)
	}
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid options after retire, got %d", len(valid))
	}
	for _, option := range valid {
		if option.ID == target.ID {
			t.Fatalf("retired option still listed as valid")
		}
	}

	// The retired option is still resolvable by id for historical records.
	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{target.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].RetiredAt == nil {
		t.Fatalf("retired option should remain resolvable with RetiredAt set: %+v", got)
	}
	firstRetiredAt := *got[0].RetiredAt

	// Second retire is a no-op keeping the original timestamp.
	if err := repo.Retire(ctx, tx, target.ID, time.Now().UTC().Add(time.Hour)); err != nil {
		t.Fatalf("Retire (second): %v", err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{target.ID})
	if err != nil {
		t.Fatalf("GetByIDs (after second retire): %v", err)
	}
	if !got[0].RetiredAt.Equal(firstRetiredAt) {
		t.Fatalf("second retire moved RetiredAt from %v to %v", firstRetiredAt, *got[0].RetiredAt)
	}
}

func TestAnswerOptionRepoRetireMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewAnswerOptionRepo(db, testutil.Logger(t))
	err := repo.Retire(context.Background(), tx, uuid.New(), time.Now().UTC())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
