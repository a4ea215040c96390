package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/metrics"
	"github.com/yutax9/storefront/internal/model"
	"github.com/yutax9/storefront/internal/session"
	webembed "github.com/yutax9/storefront/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(amount float64) string {
			return fmt.Sprintf("$%.2f", amount)
		},
		"statusName": model.OrderStatusName,
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"home.html",
		"products.html",
		"product_detail.html",
		"cart.html",
		"checkout.html",
		"orders.html",
		"order_detail.html",
		"login.html",
		"register.html",
		"forgot_password.html",
		"reset_password.html",
		"profile.html",
		"error.html",
		"admin_dashboard.html",
		"admin_products.html",
		"admin_product_form.html",
		"admin_categories.html",
		"admin_orders.html",
		"admin_shipping_zones.html",
		"admin_inventory.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title     string
	User      *model.User
	CartCount int
	Error     string
	Success   string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Backend   *backend.Client
	Sessions  *session.Manager
	Templates *Templates
	Metrics   *metrics.AppMetrics
}
