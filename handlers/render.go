package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Renderer parses the page templates once and renders them by name.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("handlers: failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (t *Renderer) Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.templates.ExecuteTemplate(w, name, data); err != nil {
		logrus.Errorf("Failed to render %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
