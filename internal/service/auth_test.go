package service

import (
	"errors"
	"testing"

	"github.com/pollify/backend/internal/dto"
)

func TestRegisterHashesPassword(t *testing.T) {
	userRepo := newFakeUserRepository()
	svc := newAuthService(userRepo, testConfig())

	user, err := svc.Register(dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Error("password stored in plaintext or not at all")
	}
	if !user.CheckPassword("s3cret") {
		t.Error("stored hash does not verify the original password")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	userRepo := newFakeUserRepository()
	svc := newAuthService(userRepo, testConfig())

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name    string
		request dto.RegisterRequest
	}{
		{"duplicate username", dto.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "pw"}},
		{"duplicate email", dto.RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "pw"}},
		{"missing fields", dto.RegisterRequest{Username: "", Email: "", Password: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.request); !errors.Is(err, dto.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	userRepo := newFakeUserRepository()
	svc := newAuthService(userRepo, testConfig())

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, dto.ErrNotAuthorized) {
		t.Errorf("expected not-authorized for wrong password, got %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Username: "nobody", Password: "pw"}); !errors.Is(err, dto.ErrNotAuthorized) {
		t.Errorf("expected not-authorized for unknown user, got %v", err)
	}

	user, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("valid login failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("unexpected user %q", user.Username)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	userRepo := newFakeUserRepository()
	svc := newAuthService(userRepo, testConfig())

	svc.EnsureAdmin()
	svc.EnsureAdmin()

	admin, err := userRepo.GetByUsername("admin")
	if err != nil {
		t.Fatalf("admin user not created: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("bootstrap user is not flagged as admin")
	}
	if !admin.CheckPassword("admin123") {
		t.Error("admin password does not verify")
	}
	if len(userRepo.users) != 1 {
		t.Errorf("expected exactly one user after double bootstrap, got %d", len(userRepo.users))
	}
}
