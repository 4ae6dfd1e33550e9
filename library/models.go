package library

import "time"

// Book is one catalog record. LentTo is free text naming the borrower;
// empty means the book is on the shelf.
//
// ID is assigned as len(records)+1 at creation time and is therefore
// not stable across deletions. Callers must treat it as a list handle,
// not a durable key.
type Book struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	LentTo    string    `json:"lent_to"`
	CreatedAt time.Time `json:"created_at"`
}

// Lent reports whether the book is currently lent out.
func (b Book) Lent() bool { return b.LentTo != "" }

// User is a registered account in the user directory. The hash is
// persisted alongside the username in users.json; User values are
// never rendered to clients.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the transient association between a live client and an
// authenticated username. It is never persisted.
type Session struct {
	Username string
}
