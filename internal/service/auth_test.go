package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

type fakeAuthRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*models.User)}
}

func (f *fakeAuthRepo) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return nil
}

func (f *fakeAuthRepo) GetUserByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthRepo) GetUserByID(id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newTestAuthService() (AuthService, *fakeAuthRepo) {
	repo := newFakeAuthRepo()
	return NewAuthService(repo, "test-secret", zap.NewNop()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register("alice", "alice@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected user ID to be assigned")
	}
	if user.PasswordHash == "correct horse battery" {
		t.Error("password stored in plaintext")
	}
	if !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Errorf("unexpected hash format: %q", user.PasswordHash)
	}

	token, expiresAt, err := svc.Login("alice", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected non-empty token")
	}
	if expiresAt.IsZero() {
		t.Error("expected expiry to be set")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register("alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register("alice", "other@example.com", "password456")
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate Register error = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register("alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login("alice", "wrong password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Login("nobody", "password123")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Login error = %v, want ErrUserNotFound", err)
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	svc, _ := newTestAuthService()
	s := svc.(*authService)

	h1, err := s.hashPassword("password123")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	h2, err := s.hashPassword("password123")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password must differ by salt")
	}
	if !s.verifyPassword(h1, "password123") || !s.verifyPassword(h2, "password123") {
		t.Error("both hashes must verify against the original password")
	}
	if s.verifyPassword(h1, "other") {
		t.Error("wrong password must not verify")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	svc, _ := newTestAuthService()
	s := svc.(*authService)

	if s.verifyPassword("not-a-hash", "password") {
		t.Error("malformed hash must not verify")
	}
	if s.verifyPassword("$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!", "password") {
		t.Error("undecodable hash must not verify")
	}
}
