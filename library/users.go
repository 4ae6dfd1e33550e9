package library

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	usersFile   = "users.json"
	minUsername = 3
	minPassword = 4
)

// UserDirectory maps usernames to credential records, backed by one
// JSON document in the data root. Registration also provisions the new
// user's record store.
type UserDirectory struct {
	root  string
	store *Store
}

// NewUserDirectory returns a directory rooted at the store's data dir.
func NewUserDirectory(dir string, store *Store) (*UserDirectory, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &UserDirectory{root: dir, store: store}, nil
}

func (d *UserDirectory) path() string {
	return filepath.Join(d.root, usersFile)
}

// load returns the credential map. Missing or malformed documents load
// as an empty directory, matching the record store's behavior.
func (d *UserDirectory) load() map[string]User {
	data, err := os.ReadFile(d.path())
	if err != nil {
		return map[string]User{}
	}
	var users map[string]User
	if err := json.Unmarshal(data, &users); err != nil {
		return map[string]User{}
	}
	return users
}

func (d *UserDirectory) save(users map[string]User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.WriteFile(d.path(), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.path(), err)
	}
	return nil
}

// HashPassword returns the hex sha256 digest of password. The scheme is
// deliberately deterministic and unsalted so existing credential
// documents keep verifying; do not swap it out without a migration.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register validates the requested account, stores its credentials,
// provisions an empty record store for the username and returns a live
// session for it.
func (d *UserDirectory) Register(username, password, confirm string) (Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	if utf8.RuneCountInString(username) < minUsername {
		return Session{}, &ValidationError{Field: "username", Reason: fmt.Sprintf("must be at least %d characters", minUsername)}
	}
	// DefaultOwner addresses the single-user catalog; registering it
	// would alias a user store onto that file.
	if username == DefaultOwner {
		return Session{}, &ValidationError{Field: "username", Reason: "is reserved"}
	}
	if len(password) < minPassword {
		return Session{}, &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPassword)}
	}
	if password != confirm {
		return Session{}, &ValidationError{Field: "password", Reason: "confirmation does not match"}
	}

	users := d.load()
	if _, taken := users[username]; taken {
		return Session{}, ErrUserExists
	}

	users[username] = User{
		Username:     username,
		PasswordHash: HashPassword(password),
		CreatedAt:    time.Now(),
	}
	if err := d.save(users); err != nil {
		return Session{}, err
	}
	if err := d.store.Save(username, []Book{}); err != nil {
		return Session{}, fmt.Errorf("provision store for %s: %w", username, err)
	}
	return Session{Username: username}, nil
}

// Authenticate checks the username/password pair against the
// directory. The password is trimmed the same way Register trims it,
// so a padded password verifies against its own registration.
func (d *UserDirectory) Authenticate(username, password string) (Session, error) {
	password = strings.TrimSpace(password)

	users := d.load()
	user, ok := users[username]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if user.PasswordHash != HashPassword(password) {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: username}, nil
}

// Lookup returns the credential record for username.
func (d *UserDirectory) Lookup(username string) (User, bool) {
	user, ok := d.load()[username]
	return user, ok
}
