package user

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPassword(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Register(User{Name: "Alma", Email: "alma@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
	if created.Role != RoleUser {
		t.Errorf("role = %q, want %q", created.Role, RoleUser)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	if _, err := s.Register(User{Name: "Alma", Email: "alma@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := s.Register(User{Name: "Other", Email: "alma@example.com", Password: "different"})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestRepositoryCreate_DuplicateEmail(t *testing.T) {
	// the repository is the arbiter when two registrations race past the
	// service's email check
	r := NewInMemoryRepository(nil)

	if _, err := r.Create(User{Name: "Alma", Email: "alma@example.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := r.Create(User{Name: "Other", Email: "alma@example.com"}); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_KeepsExplicitRole(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Register(User{Name: "Berta", Email: "berta@example.com", Password: "secret123", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Role != RoleAdmin {
		t.Errorf("role = %q, want %q", created.Role, RoleAdmin)
	}
}

func TestAuthenticate(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))
	if _, err := s.Register(User{Name: "Alma", Email: "alma@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := s.Authenticate("alma@example.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Email != "alma@example.com" {
		t.Errorf("unexpected user: %+v", u)
	}

	if _, err := s.Authenticate("alma@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}
