// Package console implements the single-user MS-DOS style menu shell
// over the global record store. No auth gate runs in this mode.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mini-library/library"
)

const rule = "============================================================"
const line = "------------------------------------------------------------"

// Console drives the interactive menu loop against a manager. Input and
// output are injected so the loop is scriptable in tests.
type Console struct {
	mgr   *library.Manager
	owner string
	sc    *bufio.Scanner
	out   io.Writer
}

// New returns a console bound to the single-user store.
func New(mgr *library.Manager, in io.Reader, out io.Writer) *Console {
	return &Console{
		mgr:   mgr,
		owner: library.DefaultOwner,
		sc:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run executes the main menu loop until the user exits or input ends.
func (c *Console) Run() {
	c.clearScreen()
	c.printf("\n>>> Loading Mini Library Manager...\n\n")

	for {
		books := c.mgr.Books(c.owner)
		c.printMainMenu()

		choice, ok := c.readLine(">>> Select an option: ")
		if !ok {
			return
		}

		c.clearScreen()

		switch choice {
		case "1":
			c.listBooks(books)
		case "2":
			c.addBook()
		case "3":
			c.editBook(books)
		case "0":
			c.clearScreen()
			c.printf("\n>>> Thank you for using Mini Library Manager. Goodbye!\n\n")
			return
		default:
			c.printf(">>> ERROR: Invalid option. Please enter 0-3.\n\n")
			c.pause()
			c.clearScreen()
		}
	}
}

func (c *Console) printMainMenu() {
	c.printf("\n%s\n", rule)
	c.printf("                 MINI LIBRARY MANAGER v1.0\n")
	c.printf("%s\n", rule)
	c.printf("\n1. List Books\n")
	c.printf("2. Add New Book\n")
	c.printf("3. Edit Book\n")
	c.printf("0. Exit\n\n")
	c.printf("%s\n", rule)
}

// listBooks prints the catalog with 1-based list positions. It returns
// false when the catalog is empty.
func (c *Console) listBooks(books []library.Book) bool {
	if len(books) == 0 {
		c.printf("\n>>> No books in library.\n\n")
		return false
	}

	c.printf("\n%s\n", line)
	c.printf("LIBRARY CONTENTS:\n")
	c.printf("%s\n", line)
	for idx, book := range books {
		lent := ""
		if book.Lent() {
			lent = fmt.Sprintf(" (Lent to: %s)", book.LentTo)
		}
		c.printf("  [%d] %-30s - %s%s\n", idx+1, book.Title, book.Author, lent)
	}
	c.printf("%s\n\n", line)
	return true
}

func (c *Console) printBookDetails(book library.Book, num int) {
	c.printf("\n%s\n", line)
	c.printf("BOOK #%d\n", num)
	c.printf("%s\n", line)
	c.printf("Title:     %s\n", book.Title)
	c.printf("Author:    %s\n", book.Author)
	lentTo := book.LentTo
	if lentTo == "" {
		lentTo = "(Not lent)"
	}
	c.printf("Lent To:   %s\n", lentTo)
	c.printf("%s\n\n", line)
}

func (c *Console) addBook() {
	c.printf("\n%s\n", line)
	c.printf("ADD NEW BOOK\n")
	c.printf("%s\n", line)

	title, ok := c.readLine(">>> Title: ")
	if !ok {
		return
	}
	if title == "" {
		c.printf(">>> ERROR: Title cannot be empty.\n\n")
		return
	}

	author, ok := c.readLine(">>> Author: ")
	if !ok {
		return
	}
	if author == "" {
		c.printf(">>> ERROR: Author cannot be empty.\n\n")
		return
	}

	lentTo, ok := c.readLine(">>> Lent To (leave empty if not lent): ")
	if !ok {
		return
	}

	book, err := c.mgr.AddBook(c.owner, title, author, lentTo)
	if err != nil {
		c.printf(">>> ERROR: %v\n\n", err)
		return
	}
	c.printf("\n>>> Book '%s' added successfully.\n\n", book.Title)
}

// editBook selects a book by its list position, then runs the edit
// submenu over it. Field edits are held in memory and persisted when
// the user goes back; delete persists immediately. Persistence is
// positional (the whole document is rewritten with the selected slot
// changed or removed), because ids can repeat after a delete and a
// first-id-match lookup could touch the wrong record.
func (c *Console) editBook(books []library.Book) {
	if !c.listBooks(books) {
		return
	}

	choice, ok := c.readLine(">>> Enter book number to edit (0 to cancel): ")
	if !ok {
		return
	}
	if choice == "0" {
		c.printf(">>> Operation cancelled.\n\n")
		return
	}

	num, err := strconv.Atoi(choice)
	if err != nil {
		c.printf(">>> ERROR: Please enter a valid number.\n\n")
		return
	}
	idx := num - 1
	if idx < 0 || idx >= len(books) {
		c.printf(">>> ERROR: Invalid book number.\n\n")
		return
	}

	c.clearScreen()
	book := books[idx]

	action := c.editBookMenu(&book, num)
	switch action {
	case actionDelete:
		title := book.Title
		books = append(books[:idx], books[idx+1:]...)
		if err := c.mgr.SaveBooks(c.owner, books); err != nil {
			c.printf(">>> ERROR: %v\n\n", err)
			return
		}
		c.clearScreen()
		c.printf("\n>>> Book '%s' deleted successfully.\n\n", title)
	case actionBack:
		books[idx] = book
		if err := c.mgr.SaveBooks(c.owner, books); err != nil {
			c.printf(">>> ERROR: %v\n\n", err)
			return
		}
		c.clearScreen()
	}
}

type editAction int

const (
	actionBack editAction = iota
	actionDelete
	actionQuit
)

func (c *Console) editBookMenu(book *library.Book, num int) editAction {
	for {
		c.printBookDetails(*book, num)

		c.printf("EDIT MENU:\n")
		c.printf("%s\n", line)
		c.printf("1. View Book\n")
		c.printf("2. Edit Title\n")
		c.printf("3. Edit Author\n")
		c.printf("4. Edit Lent To\n")
		c.printf("5. Delete Book\n")
		c.printf("0. Back to List\n\n")
		c.printf("%s\n", line)

		choice, ok := c.readLine(">>> Choose an option: ")
		if !ok {
			return actionQuit
		}

		switch choice {
		case "1":
			c.printf("\n(Book details shown above)\n\n")
		case "2":
			title, ok := c.readLine(">>> New Title: ")
			if !ok {
				return actionQuit
			}
			if title != "" {
				book.Title = title
				c.printf(">>> Title updated successfully.\n\n")
			} else {
				c.printf(">>> ERROR: Title cannot be empty.\n\n")
			}
		case "3":
			author, ok := c.readLine(">>> New Author: ")
			if !ok {
				return actionQuit
			}
			if author != "" {
				book.Author = author
				c.printf(">>> Author updated successfully.\n\n")
			} else {
				c.printf(">>> ERROR: Author cannot be empty.\n\n")
			}
		case "4":
			lentTo, ok := c.readLine(">>> Lent To (leave empty if not lent): ")
			if !ok {
				return actionQuit
			}
			book.LentTo = lentTo
			if lentTo != "" {
				c.printf(">>> Book marked as lent to '%s'.\n\n", lentTo)
			} else {
				c.printf(">>> Book marked as not lent.\n\n")
			}
		case "5":
			confirm, ok := c.readLine(">>> Are you sure you want to delete this book? (Y/N): ")
			if !ok {
				return actionQuit
			}
			if strings.ToUpper(confirm) == "Y" {
				return actionDelete
			}
			c.printf(">>> Deletion cancelled.\n\n")
		case "0":
			return actionBack
		default:
			c.printf(">>> ERROR: Invalid option. Please enter 0-5.\n\n")
		}

		c.pause()
		c.clearScreen()
	}
}

func (c *Console) readLine(prompt string) (string, bool) {
	c.printf("%s", prompt)
	if !c.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.sc.Text()), true
}

func (c *Console) pause() {
	_, _ = c.readLine(">>> Press ENTER to continue...")
}

func (c *Console) clearScreen() {
	c.printf("\033[2J\033[H")
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
