package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultOwner is the fixed owner used in single-user mode (the console
// shell). Its records live directly under the data root; registered
// users each get their own area under users/.
const DefaultOwner = "library"

const booksFile = "books.json"

// Store reads and writes one JSON document of book records per owner.
//
// Every mutation reloads the full document, changes it in memory and
// rewrites the whole file. There is no locking: concurrent writers to
// the same owner race and the last full-document write wins. That is an
// accepted limitation of the format, isolated behind this type.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: dir}, nil
}

func (s *Store) path(owner string) string {
	if owner == DefaultOwner {
		return filepath.Join(s.root, booksFile)
	}
	return filepath.Join(s.root, "users", owner, booksFile)
}

// Load returns the owner's records in file order. A missing, unreadable
// or malformed document loads as an empty catalog; corruption is not
// surfaced to callers.
func (s *Store) Load(owner string) []Book {
	data, err := os.ReadFile(s.path(owner))
	if err != nil {
		return []Book{}
	}
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return []Book{}
	}
	return books
}

// Save overwrites the owner's document with books, pretty-printed.
// The owner's storage area is created if absent.
func (s *Store) Save(owner string, books []Book) error {
	path := s.path(owner)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Add validates and appends a new record, persisting the catalog.
// The new record's ID is the current record count plus one.
func (s *Store) Add(owner, title, author, lentTo string) (Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	lentTo = strings.TrimSpace(lentTo)

	if title == "" {
		return Book{}, &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if author == "" {
		return Book{}, &ValidationError{Field: "author", Reason: "cannot be empty"}
	}

	books := s.Load(owner)
	book := Book{
		ID:        len(books) + 1,
		Title:     title,
		Author:    author,
		LentTo:    lentTo,
		CreatedAt: time.Now(),
	}
	books = append(books, book)
	if err := s.Save(owner, books); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Update overwrites the mutable fields of the record with the given id
// and persists the catalog.
func (s *Store) Update(owner string, id int, title, author, lentTo string) (Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	lentTo = strings.TrimSpace(lentTo)

	if title == "" {
		return Book{}, &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if author == "" {
		return Book{}, &ValidationError{Field: "author", Reason: "cannot be empty"}
	}

	books := s.Load(owner)
	for i := range books {
		if books[i].ID != id {
			continue
		}
		books[i].Title = title
		books[i].Author = author
		books[i].LentTo = lentTo
		if err := s.Save(owner, books); err != nil {
			return Book{}, err
		}
		return books[i], nil
	}
	return Book{}, ErrNotFound
}

// Remove deletes the first record with the given id and persists the
// catalog. It returns the removed record's title for confirmation
// messages.
func (s *Store) Remove(owner string, id int) (string, error) {
	books := s.Load(owner)
	for i := range books {
		if books[i].ID != id {
			continue
		}
		title := books[i].Title
		books = append(books[:i], books[i+1:]...)
		if err := s.Save(owner, books); err != nil {
			return "", err
		}
		return title, nil
	}
	return "", ErrNotFound
}

// Get returns the first record with the given id.
func (s *Store) Get(owner string, id int) (Book, error) {
	for _, b := range s.Load(owner) {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}
