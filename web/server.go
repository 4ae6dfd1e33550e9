// Package web implements the multi-user web shell: an echo server with
// username/password login in front of per-user record stores.
package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"mini-library/library"
)

const (
	sessionCookie = "minilib_session"
	sessionKey    = "session"
)

// BuildServer wires routes, templates and middleware into an echo
// instance. The catalog routes sit behind the session guard; only the
// login and register entry points are reachable anonymously.
func BuildServer(mgr *library.Manager, loglevel string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = newRenderer()

	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info", "":
		e.Logger.SetLevel(log.INFO)
	case "warn":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.INFO)
		e.Logger.Warnf("unknown loglevel: %s, falling back to info", loglevel)
	}

	e.Use(middleware.Recover())

	// request/response logging with server-side latency
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)
			c.Logger().Infof(
				"%s %s -> %d in %v",
				c.Request().Method, c.Request().URL.Path,
				c.Response().Status, time.Since(begin),
			)
			return err
		}
	})

	e.GET("/login", LoginFormHandler())
	e.POST("/login", LoginHandler(mgr))
	e.GET("/register", RegisterFormHandler())
	e.POST("/register", RegisterHandler(mgr))

	g := e.Group("", RequireSession(mgr))
	g.GET("/", IndexHandler(mgr))
	g.GET("/add", AddBookFormHandler())
	g.POST("/add", AddBookHandler(mgr))
	g.GET("/book/:id", ViewBookHandler(mgr))
	g.GET("/edit/:id", EditBookFormHandler(mgr))
	g.POST("/edit/:id", EditBookHandler(mgr))
	g.POST("/delete/:id", DeleteBookHandler(mgr))
	g.GET("/about", AboutHandler())
	g.GET("/logout", LogoutHandler(mgr))

	return e
}

// RequireSession resolves the session cookie and stores the session in
// the request context. Anonymous requests are redirected to the login
// entry point; this is a hard precondition, guarded routes never run
// without an identity.
func RequireSession(mgr *library.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookie)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			session, ok := mgr.CurrentUser(cookie.Value)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

func currentSession(c echo.Context) library.Session {
	if s, ok := c.Get(sessionKey).(library.Session); ok {
		return s
	}
	return library.Session{}
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
