package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teamtempo/engage-backend/internal/types"
)

// Seed helpers build the row graph most tests need: a company with a member,
// a catalog collection with ranked options, and a question set fielded by a
// live session. Everything goes through tx so it vanishes on rollback.

func SeedCompany(tb testing.TB, tx *gorm.DB) *types.Company {
	tb.Helper()
	company := &types.Company{
		ID:   uuid.New(),
		Name: fmt.Sprintf("company-%s", uuid.New().String()[:8]),
	}
	if err := tx.Create(company).Error; err != nil {
		tb.Fatalf("seed company: %v", err)
	}
	return company
}

func SeedMember(tb testing.TB, tx *gorm.DB, companyID uuid.UUID, role types.Role) (*types.User, *types.Member) {
	tb.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("member-%s@example.com", uuid.New().String()[:8]),
		Password:  "pw",
		FirstName: "Test",
		LastName:  "Member",
	}
	if err := tx.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	member := &types.Member{
		ID:        uuid.New(),
		UserID:    user.ID,
		CompanyID: companyID,
		Role:      role,
	}
	if err := tx.Create(member).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return user, member
}

// SeedCollection creates a collection with count ranked options, rank 1..count.
func SeedCollection(tb testing.TB, tx *gorm.DB, count int) (*types.OptionCollection, []*types.AnswerOption) {
	tb.Helper()
	collection := &types.OptionCollection{
		ID:    uuid.New(),
		Label: fmt.Sprintf("collection-%s", uuid.New().String()[:8]),
		Style: types.AnswerStyleRadio,
	}
	if err := tx.Create(collection).Error; err != nil {
		tb.Fatalf("seed collection: %v", err)
	}
	options := make([]*types.AnswerOption, 0, count)
	for i := 1; i <= count; i++ {
		option := &types.AnswerOption{
			ID:           uuid.New(),
			CollectionID: collection.ID,
			Label:        fmt.Sprintf("option-%d", i),
			Rank:         i,
		}
		if err := tx.Create(option).Error; err != nil {
			tb.Fatalf("seed option %d: %v", i, err)
		}
		options = append(options, option)
	}
	return collection, options
}

func SeedQuestionSet(tb testing.TB, tx *gorm.DB, collectionID uuid.UUID, questionWeight float64) (*types.QuestionTheme, *types.QuestionSet, *types.Question) {
	tb.Helper()
	theme := &types.QuestionTheme{
		ID:     uuid.New(),
		Label:  fmt.Sprintf("theme-%s", uuid.New().String()[:8]),
		Weight: 1,
	}
	if err := tx.Create(theme).Error; err != nil {
		tb.Fatalf("seed theme: %v", err)
	}
	set := &types.QuestionSet{
		ID:      uuid.New(),
		ThemeID: theme.ID,
		Label:   fmt.Sprintf("set-%s", uuid.New().String()[:8]),
		Weight:  1,
	}
	if err := tx.Create(set).Error; err != nil {
		tb.Fatalf("seed set: %v", err)
	}
	question := &types.Question{
		ID:           uuid.New(),
		SetID:        set.ID,
		CollectionID: collectionID,
		Text:         fmt.Sprintf("How was your week? (%s)", uuid.New().String()[:8]),
		Weight:       questionWeight,
	}
	if err := tx.Create(question).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return theme, set, question
}

// SeedSession fields the set for the company, alive from an hour ago until an
// hour from now.
func SeedSession(tb testing.TB, tx *gorm.DB, companyID, themeID, setID uuid.UUID) *types.Session {
	tb.Helper()
	now := time.Now().UTC()
	session := &types.Session{
		ID:        uuid.New(),
		SetID:     setID,
		ThemeID:   themeID,
		CompanyID: companyID,
		Start:     now.Add(-time.Hour),
		Until:     now.Add(time.Hour),
	}
	if err := tx.Create(session).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return session
}
