package web

import (
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/model"
	"github.com/yutax9/storefront/internal/session"
)

// HomePage handles GET /. Shows a small selection of newest products.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	products, err := s.api(r).ListProducts(r.Context(), model.ProductFilter{Ordering: "-created_at"})
	if err != nil {
		s.backendErrorPage(w, r, err, "The catalog is unavailable right now.")
		return
	}
	if len(products) > 8 {
		products = products[:8]
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Products []model.Product
	}{s.pageData(r, "Home"), products})
}

// ProductsPage handles GET /products. Filters come straight from the
// query string and are forwarded to the backend.
func (s *Server) ProductsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
		InStock:  q.Get("in_stock") == "true",
		Ordering: q.Get("ordering"),
	}

	api := s.api(r)
	products, err := api.ListProducts(r.Context(), filter)
	if err != nil {
		s.backendErrorPage(w, r, err, "The catalog is unavailable right now.")
		return
	}

	categories, err := api.ListCategories(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "The catalog is unavailable right now.")
		return
	}

	s.Templates.Render(w, "products.html", &struct {
		PageData
		Products   []model.Product
		Categories []model.Category
		Filter     model.ProductFilter
	}{s.pageData(r, "Products"), products, categories, filter})
}

// ProductDetailPage handles GET /products/{id}.
func (s *Server) ProductDetailPage(w http.ResponseWriter, r *http.Request) {
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

	inCart := 0
	if sess := session.FromContext(r.Context()); sess != nil {
		inCart = s.currentCart(r).Quantity(product.ID)
	}

	s.Templates.Render(w, "product_detail.html", &struct {
		PageData
		Product *model.Product
		InCart  int
	}{s.pageData(r, product.Name), product, inCart})
}
