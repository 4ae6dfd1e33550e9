package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"mini-library/library"
)

//go:embed templates/*.html
var templateFS embed.FS

// viewData is the model handed to every page template.
type viewData struct {
	Username string
	Flash    *Flash
	Count    int
	Books    []library.Book
	Book     library.Book
}

// renderer holds one parsed template per page, each combined with the
// shared layout.
type renderer struct {
	pages map[string]*template.Template
}

var pageFiles = []string{
	"index.html",
	"add_book.html",
	"book_details.html",
	"edit_book.html",
	"about.html",
	"login.html",
	"register.html",
}

func newRenderer() *renderer {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		pages[page] = template.Must(template.ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		))
	}
	return &renderer{pages: pages}
}

// Render implements echo.Renderer.
func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// render builds the common view model (session user, pending flash) and
// executes the page template.
func render(c echo.Context, name string, data viewData) error {
	data.Username = currentSession(c).Username
	data.Flash = popFlash(c)
	return c.Render(http.StatusOK, name, data)
}
