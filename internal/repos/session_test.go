package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/repos/testutil"
	"github.com/teamtempo/engage-backend/internal/types"
)

func TestSessionRepoGetByCompanyOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewSessionRepo(db, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	now := time.Now().UTC()

	var newest uuid.UUID
	for i, age := range []time.Duration{72 * time.Hour, 24 * time.Hour, 0} {
		theme, set, _ := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)
		session := &types.Session{
			ID:        uuid.New(),
			SetID:     set.ID,
			ThemeID:   theme.ID,
			CompanyID: company.ID,
			Start:     now.Add(-age - time.Hour),
			Until:     now.Add(-age),
		}
		if _, err := repo.Create(ctx, tx, []*types.Session{session}); err != nil {
			t.Fatalf("Create session %d: %v", i, err)
		}
		newest = session.ID
	}

	sessions, err := repo.GetByCompany(ctx, tx, company.ID)
	if err != nil {
		t.Fatalf("GetByCompany: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != newest {
		t.Fatalf("expected newest session first")
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Until.After(sessions[i-1].Until) {
			t.Fatalf("sessions not ordered newest first at position %d", i)
		}
	}
}

func TestSessionRepoExistsForCompanyTheme(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewSessionRepo(db, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	_, options := testutil.SeedCollection(t, tx, 3)
	theme, set, _ := testutil.SeedQuestionSet(t, tx, options[0].CollectionID, 1)

	exists, err := repo.ExistsForCompanyTheme(ctx, tx, company.ID, theme.ID)
	if err != nil {
		t.Fatalf("ExistsForCompanyTheme (empty): %v", err)
	}
	if exists {
		t.Fatalf("expected false before any session")
	}

	testutil.SeedSession(t, tx, company.ID, theme.ID, set.ID)

	exists, err = repo.ExistsForCompanyTheme(ctx, tx, company.ID, theme.ID)
	if err != nil {
		t.Fatalf("ExistsForCompanyTheme: %v", err)
	}
	if !exists {
		t.Fatalf("expected true after seeding session")
	}

	other := testutil.SeedCompany(t, tx)
	exists, err = repo.ExistsForCompanyTheme(ctx, tx, other.ID, theme.ID)
	if err != nil {
		t.Fatalf("ExistsForCompanyTheme (other company): %v", err)
	}
	if exists {
		t.Fatalf("expected false for other company")
	}
}
