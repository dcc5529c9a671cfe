package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/repos/testutil"
	"github.com/teamtempo/engage-backend/internal/types"
)

func TestUserMetaTagRepoWeightsForUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	categoryRepo := NewMetaCategoryRepo(db, testutil.Logger(t))
	tagRepo := NewUserMetaTagRepo(db, testutil.Logger(t))

	company := testutil.SeedCompany(t, tx)
	user, _ := testutil.SeedMember(t, tx, company.ID, types.RoleEmployee)

	categories, err := categoryRepo.Create(ctx, tx, []*types.MetaCategory{
		{ID: uuid.New(), CompanyID: company.ID, Name: "department"},
	})
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	weights, err := tagRepo.WeightsForUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("WeightsForUser (no tags): %v", err)
	}
	if len(weights) != 0 {
		t.Fatalf("expected no weights for untagged user, got %v", weights)
	}

	tags, err := tagRepo.Create(ctx, tx, []*types.UserMetaTag{
		{ID: uuid.New(), CategoryID: categories[0].ID, Label: "engineering", Weight: 1.5, UserID: &user.ID},
		{ID: uuid.New(), CategoryID: categories[0].ID, Label: "on-call", Weight: 0.5, UserID: &user.ID},
	})
	if err != nil {
		t.Fatalf("Create tags: %v", err)
	}

	weights, err = tagRepo.WeightsForUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("WeightsForUser: %v", err)
	}
	if len(weights) != 2 {
		t.Fatalf("expected 2 weights, got %d", len(weights))
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum != 2 {
		t.Fatalf("expected weight sum 2, got %v", sum)
	}

	// Unlinking keeps the row but drops it from the user's weight set.
	if err := tagRepo.Unlink(ctx, tx, tags[0].ID); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	weights, err = tagRepo.WeightsForUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("WeightsForUser (after unlink): %v", err)
	}
	if len(weights) != 1 || weights[0] != 0.5 {
		t.Fatalf("expected only the remaining tag weight, got %v", weights)
	}
}
