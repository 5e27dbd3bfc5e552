package services_test

import (
	"errors"
	"testing"

	"github.com/knowbargain/knowbargain/internal/models"
	"github.com/knowbargain/knowbargain/internal/services"
)

func TestCastVote_InvalidType(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "alice")
	deal := seedDeal(t, db, user.ID, "Mechanical keyboard", 79.99)

	for _, voteType := range []string{"", "UP", "sideways", "upvote"} {
		_, err := services.CastVote(db, user.ID, deal.ID, voteType)
		if !errors.Is(err, services.ErrInvalidVoteType) {
			t.Errorf("CastVote(%q) error = %v, want ErrInvalidVoteType", voteType, err)
		}
	}

	if got := countVotes(t, db, user.ID, deal.ID); got != 0 {
		t.Errorf("vote rows after invalid casts = %d, want 0", got)
	}
}

func TestCastVote_MissingDeal(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "alice")

	_, err := services.CastVote(db, user.ID, 9999, models.VoteTypeUp)
	if !errors.Is(err, services.ErrDealNotFound) {
		t.Fatalf("CastVote on missing deal error = %v, want ErrDealNotFound", err)
	}
}

func TestCastVote_RecordsNewVote(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "alice")
	deal := seedDeal(t, db, user.ID, "Mechanical keyboard", 79.99)

	result, err := services.CastVote(db, user.ID, deal.ID, models.VoteTypeUp)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if result.Previous != services.VoteStateNone {
		t.Errorf("Previous = %q, want %q", result.Previous, services.VoteStateNone)
	}
	if result.State != services.VoteStateUp {
		t.Errorf("State = %q, want %q", result.State, services.VoteStateUp)
	}
	if result.Score != 1 {
		t.Errorf("Score = %d, want 1", result.Score)
	}
	if got := countVotes(t, db, user.ID, deal.ID); got != 1 {
		t.Errorf("vote rows = %d, want 1", got)
	}
}

func TestCastVote_SameDirectionTogglesOff(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "alice")
	deal := seedDeal(t, db, user.ID, "Mechanical keyboard", 79.99)

	if _, err := services.CastVote(db, user.ID, deal.ID, models.VoteTypeDown); err != nil {
		t.Fatalf("first CastVote failed: %v", err)
	}

	result, err := services.CastVote(db, user.ID, deal.ID, models.VoteTypeDown)
	if err != nil {
		t.Fatalf("second CastVote failed: %v", err)
	}

	if result.State != services.VoteStateNone {
		t.Errorf("State = %q, want %q", result.State, services.VoteStateNone)
	}
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	if got := countVotes(t, db, user.ID, deal.ID); got != 0 {
		t.Errorf("vote rows after toggle-off = %d, want 0", got)
	}

	// Toggling off and casting again records a fresh vote.
	result, err = services.CastVote(db, user.ID, deal.ID, models.VoteTypeDown)
	if err != nil {
		t.Fatalf("third CastVote failed: %v", err)
	}
	if result.State != services.VoteStateDown || result.Score != -1 {
		t.Errorf("after re-cast: state = %q score = %d, want down/-1", result.State, result.Score)
	}
}

func TestCastVote_OppositeDirectionFlipsInPlace(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "alice")
	deal := seedDeal(t, db, user.ID, "Mechanical keyboard", 79.99)

	if _, err := services.CastVote(db, user.ID, deal.ID, models.VoteTypeUp); err != nil {
		t.Fatalf("first CastVote failed: %v", err)
	}

	result, err := services.CastVote(db, user.ID, deal.ID, models.VoteTypeDown)
	if err != nil {
		t.Fatalf("flip CastVote failed: %v", err)
	}

	if result.Previous != services.VoteStateUp {
		t.Errorf("Previous = %q, want %q", result.Previous, services.VoteStateUp)
	}
	if result.State != services.VoteStateDown {
		t.Errorf("State = %q, want %q", result.State, services.VoteStateDown)
	}

	// One flip swings the score by 2: one row changed polarity, no second
	// row coexists.
	if result.Score != -1 {
		t.Errorf("Score after flip = %d, want -1", result.Score)
	}
	if got := countVotes(t, db, user.ID, deal.ID); got != 1 {
		t.Errorf("vote rows after flip = %d, want 1", got)
	}
}

func TestCastVote_AtMostOneRowPerPair(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "alice")
	deal := seedDeal(t, db, user.ID, "Mechanical keyboard", 79.99)

	sequence := []string{
		models.VoteTypeUp,
		models.VoteTypeDown,
		models.VoteTypeDown,
		models.VoteTypeUp,
		models.VoteTypeUp,
		models.VoteTypeDown,
	}

	for i, voteType := range sequence {
		if _, err := services.CastVote(db, user.ID, deal.ID, voteType); err != nil {
			t.Fatalf("CastVote #%d (%s) failed: %v", i, voteType, err)
		}
		if got := countVotes(t, db, user.ID, deal.ID); got > 1 {
			t.Fatalf("vote rows after cast #%d = %d, want at most 1", i, got)
		}
	}

	// up, down, down(off), up, up(off), down leaves a single down vote.
	var vote models.Vote
	if err := db.Where("user_id = ? AND deal_id = ?", user.ID, deal.ID).First(&vote).Error; err != nil {
		t.Fatalf("expected a remaining vote row: %v", err)
	}
	if vote.VoteType != models.VoteTypeDown {
		t.Errorf("remaining vote type = %q, want %q", vote.VoteType, models.VoteTypeDown)
	}
}

func TestCastVote_ScoreAcrossUsers(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	deal := seedDeal(t, db, alice.ID, "4K monitor", 299.00)

	steps := []struct {
		userID   uint
		voteType string
		score    int
	}{
		{alice.ID, models.VoteTypeUp, 1},
		{bob.ID, models.VoteTypeUp, 2},
		{carol.ID, models.VoteTypeDown, 1},
		{alice.ID, models.VoteTypeUp, 0}, // alice toggles off
		{carol.ID, models.VoteTypeUp, 2}, // carol flips
		{bob.ID, models.VoteTypeDown, 0}, // bob flips
	}

	for i, step := range steps {
		result, err := services.CastVote(db, step.userID, deal.ID, step.voteType)
		if err != nil {
			t.Fatalf("CastVote #%d failed: %v", i, err)
		}
		if result.Score != step.score {
			t.Errorf("step #%d: score = %d, want %d", i, result.Score, step.score)
		}
	}
}
