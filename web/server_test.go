package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"mini-library/library"
)

func newTestServer(t *testing.T) (*echo.Echo, *library.Manager) {
	t.Helper()
	mgr, err := library.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return BuildServer(mgr, "off"), mgr
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

// register creates an account through the web form and returns the
// session cookie it opens.
func register(t *testing.T, e *echo.Echo, username string) *http.Cookie {
	t.Helper()
	rec := postForm(e, "/register", url.Values{
		"username":         {username},
		"password":         {"pw12"},
		"password_confirm": {"pw12"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("register %s: status %d", username, rec.Code)
	}
	cookie := findCookie(t, rec, sessionCookie)
	if cookie == nil {
		t.Fatalf("register %s: no session cookie", username)
	}
	return cookie
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/", "/add", "/book/1", "/about"} {
		rec := get(e, path)
		if rec.Code != http.StatusFound {
			t.Fatalf("GET %s anonymous: status %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Fatalf("GET %s anonymous: redirected to %q", path, loc)
		}
	}

	// mutations are guarded too
	rec := postForm(e, "/add", url.Values{"title": {"Dune"}, "author": {"Herbert"}})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("POST /add anonymous: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRegisterOpensSession(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := register(t, e, "alice")

	rec := get(e, "/", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / with session: status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No books in library") {
		t.Fatalf("expected empty catalog page:\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "alice") {
		t.Fatalf("page should show the session user:\n%s", rec.Body.String())
	}
}

func TestRegisterValidationRerenders(t *testing.T) {
	e, mgr := newTestServer(t)

	rec := postForm(e, "/register", url.Values{
		"username":         {"ab"},
		"password":         {"pw12"},
		"password_confirm": {"pw12"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/register" {
		t.Fatalf("short username: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if findCookie(t, rec, flashCookie) == nil {
		t.Fatalf("expected a flash message")
	}
	if findCookie(t, rec, sessionCookie) != nil {
		t.Fatalf("failed registration must not open a session")
	}
	if _, ok := mgr.Users().Lookup("ab"); ok {
		t.Fatalf("rejected user was stored")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	e, _ := newTestServer(t)
	register(t, e, "alice")

	rec := postForm(e, "/register", url.Values{
		"username":         {"alice"},
		"password":         {"pw34"},
		"password_confirm": {"pw34"},
	})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/register" {
		t.Fatalf("duplicate: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginAndLogout(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := register(t, e, "alice")

	// logout revokes the session
	rec := get(e, "/logout", cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("logout: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	rec = get(e, "/", cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("revoked session still accepted: %d", rec.Code)
	}

	// wrong password bounces back to login
	rec = postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("bad login: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if findCookie(t, rec, sessionCookie) != nil {
		t.Fatalf("bad login must not open a session")
	}

	// correct password opens a fresh session
	rec = postForm(e, "/login", url.Values{"username": {"alice"}, "password": {"pw12"}})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("login: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	fresh := findCookie(t, rec, sessionCookie)
	if fresh == nil {
		t.Fatalf("login did not set a session cookie")
	}
	if rec := get(e, "/", fresh); rec.Code != http.StatusOK {
		t.Fatalf("fresh session rejected: %d", rec.Code)
	}
}

func TestCatalogCrud(t *testing.T) {
	e, mgr := newTestServer(t)
	cookie := register(t, e, "alice")

	// add
	rec := postForm(e, "/add", url.Values{
		"title":   {"Dune"},
		"author":  {"Frank Herbert"},
		"lent_to": {""},
	}, cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("add: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}

	// flash shows up on the next page
	flash := findCookie(t, rec, flashCookie)
	if flash == nil {
		t.Fatalf("add did not queue a flash")
	}
	page := get(e, "/", cookie, flash)
	if !strings.Contains(page.Body.String(), "added successfully!") {
		t.Fatalf("flash not rendered:\n%s", page.Body.String())
	}
	if !strings.Contains(page.Body.String(), "Dune") {
		t.Fatalf("book not listed:\n%s", page.Body.String())
	}

	// view
	rec = get(e, "/book/1", cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Frank Herbert") {
		t.Fatalf("view: %d\n%s", rec.Code, rec.Body.String())
	}

	// edit
	rec = postForm(e, "/edit/1", url.Values{
		"title":   {"Dune"},
		"author":  {"Frank Herbert"},
		"lent_to": {"Paul"},
	}, cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/book/1" {
		t.Fatalf("edit: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if books := mgr.Books("alice"); books[0].LentTo != "Paul" {
		t.Fatalf("edit not persisted: %+v", books)
	}

	// delete
	rec = postForm(e, "/delete/1", url.Values{}, cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("delete: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if books := mgr.Books("alice"); len(books) != 0 {
		t.Fatalf("delete not persisted: %+v", books)
	}
}

func TestAddValidationRedirectsToForm(t *testing.T) {
	e, mgr := newTestServer(t)
	cookie := register(t, e, "alice")

	rec := postForm(e, "/add", url.Values{"title": {"  "}, "author": {"Herbert"}}, cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/add" {
		t.Fatalf("invalid add: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	if books := mgr.Books("alice"); len(books) != 0 {
		t.Fatalf("invalid add must not mutate: %+v", books)
	}
}

func TestUnknownBookRedirectsHome(t *testing.T) {
	e, _ := newTestServer(t)
	cookie := register(t, e, "alice")

	for _, path := range []string{"/book/99", "/edit/99", "/book/zzz"} {
		rec := get(e, path, cookie)
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
			t.Fatalf("GET %s: %d -> %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}

	rec := postForm(e, "/delete/99", url.Values{}, cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("delete unknown: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

// Each account browses and mutates only its own catalog.
func TestPerUserIsolation(t *testing.T) {
	e, _ := newTestServer(t)
	alice := register(t, e, "alice")
	bob := register(t, e, "bob")

	postForm(e, "/add", url.Values{"title": {"Dune"}, "author": {"Herbert"}}, alice)

	rec := get(e, "/", bob)
	if strings.Contains(rec.Body.String(), "Dune") {
		t.Fatalf("bob sees alice's catalog:\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "No books in library") {
		t.Fatalf("bob's catalog should be empty:\n%s", rec.Body.String())
	}
}
