package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vua-solutions/vua/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "vua.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestGetOrCreateUserIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1, err := s.GetOrCreateUser(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}
	if u1.PhoneNumber != "+254712345678" {
		t.Fatalf("phone = %q", u1.PhoneNumber)
	}
	if len(u1.Profile) != 0 {
		t.Fatalf("new user profile should be empty, got %v", u1.Profile)
	}

	u2, err := s.GetOrCreateUser(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}
	if u1.ID != u2.ID {
		t.Fatalf("expected same user, got %s and %s", u1.ID, u2.ID)
	}
}

func TestGetUserByPhoneMissing(t *testing.T) {
	s := newTestStore(t)

	u, err := s.GetUserByPhone(context.Background(), "+254700000000")
	if err != nil {
		t.Fatal(err)
	}
	if u != nil {
		t.Fatalf("expected nil for unknown phone, got %+v", u)
	}
}

func TestUpdateUserProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.GetOrCreateUser(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}

	profile := models.Profile{"a": float64(1), "name": "Amina"}
	if err := s.UpdateUserProfile(ctx, u.ID, profile); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetUserByPhone(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile["a"] != float64(1) || got.Profile["name"] != "Amina" {
		t.Fatalf("profile = %v", got.Profile)
	}
}

func TestLatestConversationOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.GetOrCreateUser(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}

	if c, err := s.LatestConversation(ctx, u.ID); err != nil || c != nil {
		t.Fatalf("expected no conversation yet, got %+v, %v", c, err)
	}

	first, err := s.CreateConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := s.CreateConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}

	latest, err := s.LatestConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("latest = %+v, want %s", latest, second.ID)
	}
	if latest.ID == first.ID {
		t.Fatal("latest returned the older conversation")
	}
}

func TestSaveMessagesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.GetOrCreateUser(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}
	conv, err := s.CreateConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}

	msgs := []models.Message{
		{ID: "01HZX5TESTULID0000000000A", Role: models.RoleUser, Content: "hi", Timestamp: 1},
		{ID: "01HZX5TESTULID0000000000B", Role: models.RoleAssistant, Content: "hello", Timestamp: 2},
	}
	if err := s.SaveMessages(ctx, conv.ID, msgs); err != nil {
		t.Fatal(err)
	}

	got, err := s.LatestConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %d", len(got.Messages))
	}
	if got.Messages[0].Role != models.RoleUser || got.Messages[1].Role != models.RoleAssistant {
		t.Fatalf("roles = %s, %s", got.Messages[0].Role, got.Messages[1].Role)
	}
	if got.Messages[1].Content != "hello" {
		t.Fatalf("content = %q", got.Messages[1].Content)
	}
	if got.UpdatedAt == nil {
		t.Fatal("updated_at should be set after save")
	}
}

func TestSetConversationSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.GetOrCreateUser(ctx, "+254712345678")
	if err != nil {
		t.Fatal(err)
	}
	conv, err := s.CreateConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetConversationSummary(ctx, conv.ID, "customer asked about loans"); err != nil {
		t.Fatal(err)
	}

	got, err := s.LatestConversation(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary != "customer asked about loans" {
		t.Fatalf("summary = %q", got.Summary)
	}
}
