package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"time"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/session"
	"chirp/internal/view"

	"github.com/gofiber/fiber/v2"
)

const flashCookieName = "chirp_flash"

// flashPayload is the wire form of a flash notice inside its cookie. The
// value is base64 so markup in the message survives cookie encoding rules.
type flashPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// setFlash stores a one-shot notice that the next rendered page displays.
func setFlash(c *fiber.Ctx, level, message string) {
	raw, err := json.Marshal(flashPayload{Level: level, Message: message})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash returns the pending notice, if any, and clears its cookie.
func popFlash(c *fiber.Ctx) *view.Flash {
	encoded := c.Cookies(flashCookieName)
	if encoded == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var payload flashPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return &view.Flash{Level: payload.Level, Message: template.HTML(payload.Message)}
}

// LoadSession resolves the session cookie and, when valid, stores the user ID
// and the loaded account in request locals. Anonymous requests pass through.
func (s *Server) LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Next()
		}

		userID, err := s.sessions.Resolve(c.UserContext(), token)
		if err != nil {
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			return c.Next()
		}

		c.Locals("userID", userID)
		c.Locals("user", user)
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, userID))
		return c.Next()
	}
}

// AuthRequired rejects anonymous requests. HTML routes redirect to the login
// page; the JSON like endpoint gets a JSON error instead.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); ok {
			return c.Next()
		}

		if c.Path() == "/tweets/likes" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		setFlash(c, "error", "Please sign in first.")
		return c.Redirect("/users/login", fiber.StatusSeeOther)
	}
}

// currentUser returns the account loaded by LoadSession, nil for anonymous
// visitors.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// currentUserID returns the session identity. Handlers behind AuthRequired
// may rely on ok being true.
func (s *Server) currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}

// render writes an HTML page wrapped in the layout, attaching the session
// user and any pending flash notice.
func (s *Server) render(c *fiber.Ctx, status int, page, title string, data any) error {
	return s.renderer.HTML(c, status, page, view.Page{
		Title: title,
		User:  s.currentUser(c),
		Flash: popFlash(c),
		Data:  data,
	})
}

// renderErrorPage maps a status code onto its dedicated error page.
func (s *Server) renderErrorPage(c *fiber.Ctx, status int) error {
	page := "errors/500"
	switch status {
	case fiber.StatusBadRequest:
		page = "errors/400"
	case fiber.StatusForbidden:
		page = "errors/403"
	case fiber.StatusNotFound:
		page = "errors/404"
	}
	return s.render(c, status, page, "Error", nil)
}
