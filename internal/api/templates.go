package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var pageTemplates = []string{
	"home",
	"registration",
	"booking",
	"dashboard",
	"prescriptions",
	"symptom_checker",
	"doctor_profile",
	"not_found",
	"error",
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(layout)
		},
		"formatCents": func(cents int) string {
			return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
		},
		"isActiveRoute": func(currentPath string, route string) bool {
			path := strings.TrimSpace(currentPath)
			if route == "/" {
				return path == "/" || path == ""
			}
			return path == route || strings.HasPrefix(path, route+"/")
		},
		"toJSON": func(value any) template.JS {
			serialized, _ := json.Marshal(value)
			return template.JS(serialized)
		},
	}
}

func parsePageTemplates(files fs.FS) (map[string]*template.Template, error) {
	funcMap := newTemplateFuncMap()
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(files, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		return fmt.Errorf("render template %q: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	payload := fiber.Map{
		"CurrentPath": c.Path(),
		"CSRFToken":   csrfToken(c),
		"Status":      handler.status.Snapshot(),
	}
	for key, value := range data {
		payload[key] = value
	}
	return payload
}
