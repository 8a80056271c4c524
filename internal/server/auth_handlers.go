package server

import (
	"errors"
	"time"

	"chirp/internal/forms"
	"chirp/internal/service"
	"chirp/internal/session"

	"github.com/gofiber/fiber/v2"
)

// loginData is the view model for the login page.
type loginData struct {
	Form *forms.LoginForm
}

// ShowLogin renders the sign-in form.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "users/login", "Sign in", loginData{
		Form: &forms.LoginForm{},
	})
}

// Authenticate verifies the submitted credentials and establishes a session.
// Unknown username, wrong password and inactive account all re-render the form
// with the same generic message.
func (s *Server) Authenticate(c *fiber.Ctx) error {
	form := &forms.LoginForm{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	if !form.Validate() {
		return s.render(c, fiber.StatusOK, "users/login", "Sign in", loginData{Form: form})
	}

	user, err := s.userService.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			form.Reject()
			return s.render(c, fiber.StatusOK, "users/login", "Sign in", loginData{Form: form})
		}
		return err
	}

	token, err := s.sessions.Issue(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)

	setFlash(c, "success", "Welcome back, "+user.DisplayName+".")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout revokes the session, clears the cookie and redirects to the feed.
// Works the same whether or not the caller was signed in.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		_ = s.sessions.Revoke(c.UserContext(), token)
	}
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   s.config.SessionTTLMin * 60,
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
