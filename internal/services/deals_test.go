package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/knowbargain/knowbargain/internal/models"
	"github.com/knowbargain/knowbargain/internal/services"
)

func TestListDeals_NewestFirstWithDerivedFields(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	older := seedDeal(t, db, alice.ID, "Older deal", 10.00)
	newer := seedDeal(t, db, bob.ID, "Newer deal", 20.00)

	// Pin creation times so the ordering assertion is deterministic.
	base := time.Now().UTC()
	if err := db.Model(&models.Deal{}).Where("id = ?", older.ID).
		Update("created_at", base.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("Failed to pin created_at: %v", err)
	}
	if err := db.Model(&models.Deal{}).Where("id = ?", newer.ID).
		Update("created_at", base).Error; err != nil {
		t.Fatalf("Failed to pin created_at: %v", err)
	}

	if _, err := services.CastVote(db, alice.ID, newer.ID, models.VoteTypeUp); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := services.CastVote(db, bob.ID, newer.ID, models.VoteTypeUp); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := services.CastVote(db, alice.ID, older.ID, models.VoteTypeDown); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if _, err := services.AddComment(db, alice.ID, newer.ID, "Great price"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := services.AddComment(db, bob.ID, newer.ID, "Bought one"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	deals, err := services.ListDeals(db)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("deal count = %d, want 2", len(deals))
	}

	first, second := deals[0], deals[1]

	if first.ID != newer.ID || second.ID != older.ID {
		t.Errorf("order = [%d, %d], want newest first [%d, %d]", first.ID, second.ID, newer.ID, older.ID)
	}
	if first.Username != "bob" {
		t.Errorf("first deal username = %q, want bob", first.Username)
	}
	if first.Score != 2 {
		t.Errorf("first deal score = %d, want 2", first.Score)
	}
	if first.CommentCount != 2 {
		t.Errorf("first deal comment count = %d, want 2", first.CommentCount)
	}
	if second.Score != -1 {
		t.Errorf("second deal score = %d, want -1", second.Score)
	}
	if second.CommentCount != 0 {
		t.Errorf("second deal comment count = %d, want 0", second.CommentCount)
	}
}

func TestListDeals_Empty(t *testing.T) {
	db := openTestDB(t)

	deals, err := services.ListDeals(db)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(deals) != 0 {
		t.Errorf("deal count = %d, want 0", len(deals))
	}
}

func TestGetDealSummary(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	deal := seedDeal(t, db, alice.ID, "Espresso machine", 249.99)

	if _, err := services.CastVote(db, alice.ID, deal.ID, models.VoteTypeUp); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	summary, err := services.GetDealSummary(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDealSummary failed: %v", err)
	}

	if summary.Title != "Espresso machine" || summary.Username != "alice" || summary.Score != 1 {
		t.Errorf("summary = %+v, want title/username/score Espresso machine/alice/1", summary)
	}

	if _, err := services.GetDealSummary(db, 9999); !errors.Is(err, services.ErrDealNotFound) {
		t.Errorf("GetDealSummary on missing deal error = %v, want ErrDealNotFound", err)
	}
}

func TestToggleSave_IsItsOwnInverse(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	deal := seedDeal(t, db, alice.ID, "Espresso machine", 249.99)

	saved, err := services.ToggleSave(db, alice.ID, deal.ID)
	if err != nil {
		t.Fatalf("first ToggleSave failed: %v", err)
	}
	if !saved {
		t.Error("first toggle: saved = false, want true")
	}

	list, err := services.ListSaved(db, alice.ID)
	if err != nil {
		t.Fatalf("ListSaved failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != deal.ID {
		t.Fatalf("saved list = %+v, want single entry for deal %d", list, deal.ID)
	}

	saved, err = services.ToggleSave(db, alice.ID, deal.ID)
	if err != nil {
		t.Fatalf("second ToggleSave failed: %v", err)
	}
	if saved {
		t.Error("second toggle: saved = true, want false")
	}

	list, err = services.ListSaved(db, alice.ID)
	if err != nil {
		t.Fatalf("ListSaved failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("saved list after double toggle = %+v, want empty", list)
	}

	// Repeated toggling never errors and never duplicates the pair.
	for i := 0; i < 4; i++ {
		if _, err := services.ToggleSave(db, alice.ID, deal.ID); err != nil {
			t.Fatalf("toggle #%d failed: %v", i, err)
		}
	}

	var count int64
	if err := db.Table("saved_deals").
		Where("user_id = ? AND deal_id = ?", alice.ID, deal.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count saved rows: %v", err)
	}
	if count != 0 {
		t.Errorf("saved rows after even number of toggles = %d, want 0", count)
	}
}

func TestToggleSave_MissingEntities(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	deal := seedDeal(t, db, alice.ID, "Espresso machine", 249.99)

	if _, err := services.ToggleSave(db, alice.ID, 9999); !errors.Is(err, services.ErrDealNotFound) {
		t.Errorf("ToggleSave missing deal error = %v, want ErrDealNotFound", err)
	}
	if _, err := services.ToggleSave(db, 9999, deal.ID); !errors.Is(err, services.ErrUserNotFound) {
		t.Errorf("ToggleSave missing user error = %v, want ErrUserNotFound", err)
	}
}

func TestListSaved_IncludesCommentCounts(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	deal := seedDeal(t, db, alice.ID, "Espresso machine", 249.99)

	if _, err := services.AddComment(db, bob.ID, deal.ID, "Tempting"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := services.ToggleSave(db, bob.ID, deal.ID); err != nil {
		t.Fatalf("ToggleSave failed: %v", err)
	}

	list, err := services.ListSaved(db, bob.ID)
	if err != nil {
		t.Fatalf("ListSaved failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("saved list length = %d, want 1", len(list))
	}
	if list[0].CommentCount != 1 {
		t.Errorf("saved deal comment count = %d, want 1", list[0].CommentCount)
	}
	if list[0].Status != models.DealStatusActive {
		t.Errorf("saved deal status = %q, want %q", list[0].Status, models.DealStatusActive)
	}
}
