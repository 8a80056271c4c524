// Package view renders the server-side HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// pages lists every renderable page; each is parsed together with the layout.
var pages = []string{
	"tweets/index",
	"tweets/new",
	"tweets/show",
	"users/new",
	"users/login",
	"users/edit",
	"users/show",
	"errors/400",
	"errors/403",
	"errors/404",
	"errors/500",
}

// Flash is a one-shot notice surviving a redirect. Message may carry markup
// (the compose success notice links to the new tweet).
type Flash struct {
	Level   string
	Message template.HTML
}

// Page is the data envelope every template receives.
type Page struct {
	Title string
	// User is the authenticated account, nil for anonymous visitors.
	User  *models.User
	Flash *Flash
	Data  any
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// HTML renders a page into the response with the given status code.
func (r *Renderer) HTML(c *fiber.Ctx, status int, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render template %s: %w", page, err)
	}

	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// StaticFS returns the embedded static assets rooted at "static".
func StaticFS() http.FileSystem {
	return http.FS(staticFS)
}
