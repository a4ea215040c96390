package web

import (
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/model"
)

// AdminCategoriesPage handles GET /admin/categories.
func (s *Server) AdminCategoriesPage(w http.ResponseWriter, r *http.Request) {
	categories, err := s.api(r).ListCategories(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Categories could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_categories.html", &struct {
		PageData
		Categories []model.Category
	}{s.pageData(r, "Manage Categories"), categories})
}

// AdminCategoryCreateSubmit handles POST /admin/categories.
func (s *Server) AdminCategoryCreateSubmit(w http.ResponseWriter, r *http.Request) {
	input := &backend.CategoryInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if input.Name == "" {
		categories, err := s.api(r).ListCategories(r.Context())
		if err != nil {
			s.backendErrorPage(w, r, err, "Categories could not be loaded.")
			return
		}
		data := s.pageData(r, "Manage Categories")
		data.Error = "A category name is required."
		s.Templates.Render(w, "admin_categories.html", &struct {
			PageData
			Categories []model.Category
		}{data, categories})
		return
	}

	if _, err := s.api(r).CreateCategory(r.Context(), input); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The category could not be created."))
		return
	}

	redirectSuccess(w, r, "/admin/categories", "Category created.")
}

// AdminCategoryUpdateSubmit handles POST /admin/categories/{id}.
func (s *Server) AdminCategoryUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	input := &backend.CategoryInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
	if _, err := s.api(r).UpdateCategory(r.Context(), id, input); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The category could not be saved."))
		return
	}

	redirectSuccess(w, r, "/admin/categories", "Category saved.")
}

// AdminCategoryDeleteSubmit handles POST /admin/categories/{id}/delete.
func (s *Server) AdminCategoryDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.api(r).DeleteCategory(r.Context(), id); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The category could not be deleted."))
		return
	}

	redirectSuccess(w, r, "/admin/categories", "Category deleted.")
}
