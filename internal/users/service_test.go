package users

import (
	"context"
	"errors"
	"testing"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
)

func snapshot() drafts.UserSnapshot {
	return drafts.UserSnapshot{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Username:  "ada@example.com",
		Password:  "longenough",
		Role:      session.RoleUser,
	}
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.CreateFromDraft(ctx, snapshot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	user, err := svc.Authenticate(ctx, "ada@example.com", "longenough")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != id {
		t.Fatalf("authenticated wrong user: %s != %s", user.ID, id)
	}
	if user.PasswordHash == "longenough" {
		t.Fatal("password stored in the clear")
	}

	if _, err := svc.Authenticate(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected bad credentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "longenough"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected bad credentials for unknown user, got %v", err)
	}
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.CreateFromDraft(ctx, snapshot()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateFromDraft(ctx, snapshot()); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestUpdateWithEmptyPasswordKeepsHash(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.CreateFromDraft(ctx, snapshot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := svc.GetByID(ctx, id)

	snap := snapshot()
	snap.Password = ""
	snap.Firstname = "Augusta"
	if err := svc.UpdateFromDraft(ctx, id, snap); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, _ := svc.GetByID(ctx, id)
	if after.PasswordHash != before.PasswordHash {
		t.Fatal("empty password must not rewrite the hash")
	}
	if after.Firstname != "Augusta" {
		t.Fatal("other fields must still update")
	}

	// The old password still authenticates.
	if _, err := svc.Authenticate(ctx, "ada@example.com", "longenough"); err != nil {
		t.Fatalf("authenticate after update: %v", err)
	}
}

func TestUpdateWithNewPasswordRotatesHash(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, _ := svc.CreateFromDraft(ctx, snapshot())
	snap := snapshot()
	snap.Password = "evenlonger1"
	if err := svc.UpdateFromDraft(ctx, id, snap); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ada@example.com", "evenlonger1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ada@example.com", "longenough"); !errors.Is(err, ErrBadCredentials) {
		t.Fatal("old password must stop working")
	}
}

func TestVerifiedApplierRequiresApplierRole(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	snap := snapshot()
	snap.Role = session.RoleTier2
	snap.VerifiedApplier = true
	id, err := svc.CreateFromDraft(ctx, snap)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	user, _ := svc.GetByID(ctx, id)
	if user.VerifiedApplier {
		t.Fatal("verified_applier must be false for non-applier roles")
	}

	snap.Role = session.RoleApplier
	if err := svc.UpdateFromDraft(ctx, id, snap); err != nil {
		t.Fatalf("update: %v", err)
	}
	user, _ = svc.GetByID(ctx, id)
	if !user.VerifiedApplier {
		t.Fatal("verified_applier should hold for appliers")
	}

	snap.Role = session.RoleUser
	if err := svc.UpdateFromDraft(ctx, id, snap); err != nil {
		t.Fatalf("update: %v", err)
	}
	user, _ = svc.GetByID(ctx, id)
	if user.VerifiedApplier {
		t.Fatal("verified_applier must reset when role leaves applier")
	}
}

func TestRemove(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, _ := svc.CreateFromDraft(ctx, snapshot())
	if err := svc.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
