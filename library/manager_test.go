package library

import (
	"errors"
	"testing"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return mgr
}

func TestManagerAuthFlow(t *testing.T) {
	mgr := newManager(t)

	token, err := mgr.Register("alice", "pw12", "pw12")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	session, ok := mgr.CurrentUser(token)
	if !ok || session.Username != "alice" {
		t.Fatalf("registration should open a session, got ok=%v %+v", ok, session)
	}

	mgr.Logout(token)
	if _, ok := mgr.CurrentUser(token); ok {
		t.Fatalf("logout must revoke the token")
	}

	if _, err := mgr.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}

	token2, err := mgr.Login("alice", "pw12")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token2 == token {
		t.Fatalf("fresh login should issue a fresh token")
	}
}

func TestManagerCatalogDelegation(t *testing.T) {
	mgr := newManager(t)

	book, err := mgr.AddBook(DefaultOwner, "Dune", "Herbert", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got, err := mgr.GetBook(DefaultOwner, book.ID); err != nil || got.Title != "Dune" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := mgr.UpdateBook(DefaultOwner, book.ID, "Dune", "Frank Herbert", "Paul"); err != nil {
		t.Fatalf("update: %v", err)
	}
	title, err := mgr.RemoveBook(DefaultOwner, book.ID)
	if err != nil || title != "Dune" {
		t.Fatalf("remove: %q %v", title, err)
	}
	if got := mgr.Books(DefaultOwner); len(got) != 0 {
		t.Fatalf("catalog should be empty, got %d", len(got))
	}
}

// Registering the single-user owner name must fail and leave the
// shared catalog intact.
func TestManagerRejectsReservedOwnerRegistration(t *testing.T) {
	mgr := newManager(t)

	if _, err := mgr.AddBook(DefaultOwner, "Dune", "Herbert", ""); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := mgr.Register(DefaultOwner, "pw12", "pw12"); !IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}

	if got := mgr.Books(DefaultOwner); len(got) != 1 {
		t.Fatalf("shared catalog wiped by registration attempt: %d books left", len(got))
	}
}

// Owners never share records: each username addresses its own store.
func TestManagerOwnerIsolation(t *testing.T) {
	mgr := newManager(t)

	if _, err := mgr.Register("alice", "pw12", "pw12"); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := mgr.Register("bob", "pw12", "pw12"); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if _, err := mgr.AddBook("alice", "Dune", "Herbert", ""); err != nil {
		t.Fatalf("add for alice: %v", err)
	}

	if got := mgr.Books("bob"); len(got) != 0 {
		t.Fatalf("bob sees alice's books: %+v", got)
	}
	if got := mgr.Books(DefaultOwner); len(got) != 0 {
		t.Fatalf("global store sees alice's books: %+v", got)
	}
}
