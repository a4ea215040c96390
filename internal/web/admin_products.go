package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/model"
)

// productFormData is the template data for the product create/edit form.
type productFormData struct {
	PageData
	Product    *backend.ProductInput
	ProductID  int64
	Categories []model.Category
}

// AdminProductsPage handles GET /admin/products.
func (s *Server) AdminProductsPage(w http.ResponseWriter, r *http.Request) {
	products, err := s.api(r).ListProducts(r.Context(), model.ProductFilter{Search: r.URL.Query().Get("search")})
	if err != nil {
		s.backendErrorPage(w, r, err, "Products could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_products.html", &struct {
		PageData
		Products []model.Product
		Search   string
	}{s.pageData(r, "Manage Products"), products, r.URL.Query().Get("search")})
}

// AdminProductNewPage handles GET /admin/products/new.
func (s *Server) AdminProductNewPage(w http.ResponseWriter, r *http.Request) {
	categories, err := s.api(r).ListCategories(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Categories could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_product_form.html", &productFormData{
		PageData:   s.pageData(r, "New Product"),
		Product:    &backend.ProductInput{IsActive: true},
		Categories: categories,
	})
}

// AdminProductCreateSubmit handles POST /admin/products/new.
func (s *Server) AdminProductCreateSubmit(w http.ResponseWriter, r *http.Request) {
	input, msg := s.parseProductForm(r)
	if msg != "" {
		s.renderProductForm(w, r, "New Product", input, 0, msg)
		return
	}

	product, err := s.api(r).CreateProduct(r.Context(), input)
	if err != nil {
		if s.handleUnauthorized(w, r, err) {
			return
		}
		s.renderProductForm(w, r, "New Product", input, 0, errorMessage(err, "The product could not be created."))
		return
	}

	slog.Info("product created", "product", product.ID, "sku", product.SKU)
	redirectSuccess(w, r, "/admin/products", "Product created.")
}

// AdminProductEditPage handles GET /admin/products/{id}/edit.
func (s *Server) AdminProductEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := s.api(r).GetProduct(r.Context(), id)
	if err != nil {
		s.backendErrorPage(w, r, err, "This product could not be found.")
		return
	}

	input := &backend.ProductInput{
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		SKU:           product.SKU,
		Category:      product.Category,
		ImageURL:      product.ImageURL,
		IsActive:      product.IsActive,
	}
	s.renderProductForm(w, r, "Edit Product", input, id, "")
}

// AdminProductUpdateSubmit handles POST /admin/products/{id}/edit.
func (s *Server) AdminProductUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	input, msg := s.parseProductForm(r)
	if msg != "" {
		s.renderProductForm(w, r, "Edit Product", input, id, msg)
		return
	}

	if _, err := s.api(r).UpdateProduct(r.Context(), id, input); err != nil {
		if s.handleUnauthorized(w, r, err) {
			return
		}
		s.renderProductForm(w, r, "Edit Product", input, id, errorMessage(err, "The product could not be saved."))
		return
	}

	redirectSuccess(w, r, "/admin/products", "Product saved.")
}

// AdminProductDeleteSubmit handles POST /admin/products/{id}/delete.
func (s *Server) AdminProductDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.api(r).DeleteProduct(r.Context(), id); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The product could not be deleted."))
		return
	}

	slog.Info("product deleted", "product", id)
	redirectSuccess(w, r, "/admin/products", "Product deleted.")
}

// parseProductForm reads and validates the product form. A non-empty
// message means validation failed; the partial input is returned so the
// form can be re-rendered with the user's values.
func (s *Server) parseProductForm(r *http.Request) (*backend.ProductInput, string) {
	input := &backend.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		SKU:         r.FormValue("sku"),
		ImageURL:    r.FormValue("image_url"),
		IsActive:    r.FormValue("is_active") == "on",
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err == nil {
		input.Price = price
	}
	stock, err := strconv.Atoi(r.FormValue("stock_quantity"))
	if err == nil {
		input.StockQuantity = stock
	}
	category, err := strconv.ParseInt(r.FormValue("category"), 10, 64)
	if err == nil {
		input.Category = category
	}

	switch {
	case input.Name == "" || input.Description == "" || input.SKU == "":
		return input, "Name, description, and SKU are required."
	case input.Price <= 0:
		return input, "Price must be greater than zero."
	case input.StockQuantity < 0:
		return input, "Stock quantity cannot be negative."
	case input.Category == 0:
		return input, "Select a category."
	}
	return input, ""
}

// renderProductForm re-renders the product form, loading the category
// dropdown options.
func (s *Server) renderProductForm(w http.ResponseWriter, r *http.Request, title string, input *backend.ProductInput, id int64, errMsg string) {
	categories, err := s.api(r).ListCategories(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Categories could not be loaded.")
		return
	}

	data := s.pageData(r, title)
	data.Error = errMsg
	s.Templates.Render(w, "admin_product_form.html", &productFormData{
		PageData:   data,
		Product:    input,
		ProductID:  id,
		Categories: categories,
	})
}
