package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/model"
)

// AdminInventoryPage handles GET /admin/inventory. Shows the low-stock
// report plus the full catalog for stock adjustments.
func (s *Server) AdminInventoryPage(w http.ResponseWriter, r *http.Request) {
	api := s.api(r)

	lowStock, err := api.LowStockProducts(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "The inventory report could not be loaded.")
		return
	}

	products, err := api.ListProducts(r.Context(), model.ProductFilter{Ordering: "stock_quantity"})
	if err != nil {
		s.backendErrorPage(w, r, err, "The inventory report could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_inventory.html", &struct {
		PageData
		LowStock []model.Product
		Products []model.Product
	}{s.pageData(r, "Inventory"), lowStock, products})
}

// AdminStockSubmit handles POST /admin/inventory/{id}/stock.
func (s *Server) AdminStockSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("stock_quantity"))
	if err != nil || quantity < 0 {
		http.Error(w, "invalid stock quantity", http.StatusBadRequest)
		return
	}

	product, err := s.api(r).UpdateStock(r.Context(), id, quantity)
	if err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The stock level could not be updated."))
		return
	}

	slog.Info("stock updated", "product", product.ID, "quantity", quantity)
	redirectSuccess(w, r, "/admin/inventory", "Stock updated.")
}
