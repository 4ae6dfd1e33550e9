package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mini-library/library"
)

// IndexHandler lists the session user's catalog.
func IndexHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		books := mgr.Books(currentSession(c).Username)
		return render(c, "index.html", viewData{Books: books, Count: len(books)})
	}
}

// AddBookFormHandler shows the add form.
func AddBookFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, "add_book.html", viewData{})
	}
}

// AddBookHandler creates a new record from the submitted form.
func AddBookHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		title := strings.TrimSpace(c.FormValue("title"))
		author := strings.TrimSpace(c.FormValue("author"))
		lentTo := strings.TrimSpace(c.FormValue("lent_to"))

		if title == "" || author == "" {
			setFlash(c, "error", "Title and Author are required!")
			return c.Redirect(http.StatusFound, "/add")
		}

		book, err := mgr.AddBook(currentSession(c).Username, title, author, lentTo)
		if err != nil {
			setFlash(c, "error", err.Error())
			return c.Redirect(http.StatusFound, "/add")
		}
		setFlash(c, "success", "Book '"+book.Title+"' added successfully!")
		return c.Redirect(http.StatusFound, "/")
	}
}

// ViewBookHandler shows one record's details.
func ViewBookHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return bookNotFound(c)
		}
		book, err := mgr.GetBook(currentSession(c).Username, id)
		if err != nil {
			return bookNotFound(c)
		}
		return render(c, "book_details.html", viewData{Book: book})
	}
}

// EditBookFormHandler shows the edit form pre-filled with the record.
func EditBookFormHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return bookNotFound(c)
		}
		book, err := mgr.GetBook(currentSession(c).Username, id)
		if err != nil {
			return bookNotFound(c)
		}
		return render(c, "edit_book.html", viewData{Book: book})
	}
}

// EditBookHandler overwrites the record's mutable fields.
func EditBookHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return bookNotFound(c)
		}

		title := strings.TrimSpace(c.FormValue("title"))
		author := strings.TrimSpace(c.FormValue("author"))
		lentTo := strings.TrimSpace(c.FormValue("lent_to"))

		if title == "" || author == "" {
			setFlash(c, "error", "Title and Author are required!")
			return c.Redirect(http.StatusFound, "/edit/"+c.Param("id"))
		}

		book, err := mgr.UpdateBook(currentSession(c).Username, id, title, author, lentTo)
		if err != nil {
			if errors.Is(err, library.ErrNotFound) {
				return bookNotFound(c)
			}
			setFlash(c, "error", err.Error())
			return c.Redirect(http.StatusFound, "/edit/"+c.Param("id"))
		}
		setFlash(c, "success", "Book '"+book.Title+"' updated successfully!")
		return c.Redirect(http.StatusFound, "/book/"+c.Param("id"))
	}
}

// DeleteBookHandler removes the record. POST only.
func DeleteBookHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return bookNotFound(c)
		}
		title, err := mgr.RemoveBook(currentSession(c).Username, id)
		if err != nil {
			return bookNotFound(c)
		}
		setFlash(c, "success", "Book '"+title+"' deleted successfully!")
		return c.Redirect(http.StatusFound, "/")
	}
}

// AboutHandler shows the about page.
func AboutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, "about.html", viewData{})
	}
}

func bookNotFound(c echo.Context) error {
	setFlash(c, "error", "Book not found!")
	return c.Redirect(http.StatusFound, "/")
}

// ------------------ Auth ------------------

// LoginFormHandler shows the login page.
func LoginFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, "login.html", viewData{})
	}
}

// LoginHandler authenticates the submitted credentials and opens a
// session.
func LoginHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.FormValue("username"))
		password := c.FormValue("password")

		token, err := mgr.Login(username, password)
		if err != nil {
			setFlash(c, "error", "Invalid username or password!")
			return c.Redirect(http.StatusFound, "/login")
		}
		setSessionCookie(c, token)
		return c.Redirect(http.StatusFound, "/")
	}
}

// RegisterFormHandler shows the registration page.
func RegisterFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, "register.html", viewData{})
	}
}

// RegisterHandler creates the account and logs it straight in.
func RegisterHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.FormValue("username"))
		password := c.FormValue("password")
		confirm := c.FormValue("password_confirm")

		token, err := mgr.Register(username, password, confirm)
		if err != nil {
			switch {
			case errors.Is(err, library.ErrUserExists):
				setFlash(c, "error", "Username already taken!")
			case library.IsValidation(err):
				setFlash(c, "error", err.Error())
			default:
				setFlash(c, "error", "Registration failed.")
				c.Logger().Errorf("register %q: %v", username, err)
			}
			return c.Redirect(http.StatusFound, "/register")
		}
		setSessionCookie(c, token)
		setFlash(c, "success", "Welcome, "+username+"!")
		return c.Redirect(http.StatusFound, "/")
	}
}

// LogoutHandler tears the session down and returns to the login page.
func LogoutHandler(mgr *library.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			mgr.Logout(cookie.Value)
		}
		clearSessionCookie(c)
		return c.Redirect(http.StatusFound, "/login")
	}
}
