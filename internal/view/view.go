package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"csemotors/internal/auth"
	"csemotors/internal/model"
	"csemotors/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the data object every handler hands to the view layer. Errors
// is nil unless the request failed validation; the flash buckets hold the
// one-shot messages drained for this request.
type Page struct {
	Title    string
	Nav      []model.Classification
	Errors   []string
	Success  []string
	Notice   []string
	Failure  []string
	LoggedIn bool
	Account  *auth.Identity
	Form     map[string]string
	Data     interface{}
}

// AddFlashes sorts drained flash messages into the page buckets.
func (p *Page) AddFlashes(flashes []session.Flash) {
	for _, f := range flashes {
		switch f.Category {
		case session.FlashSuccess:
			p.Success = append(p.Success, f.Message)
		case session.FlashError:
			p.Failure = append(p.Failure, f.Message)
		default:
			p.Notice = append(p.Notice, f.Message)
		}
	}
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
