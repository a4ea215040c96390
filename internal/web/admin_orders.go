package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/model"
)

// AdminOrdersPage handles GET /admin/orders. Optional ?status= filters
// the list.
func (s *Server) AdminOrdersPage(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	orders, err := s.api(r).ListOrders(r.Context(), status)
	if err != nil {
		s.backendErrorPage(w, r, err, "Orders could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_orders.html", &struct {
		PageData
		Orders   []model.Order
		Status   string
		Statuses []string
	}{s.pageData(r, "Manage Orders"), orders, status, model.OrderStatuses})
}

// AdminOrderStatusSubmit handles POST /admin/orders/{id}/status.
func (s *Server) AdminOrderStatusSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	status := r.FormValue("status")
	if !model.ValidOrderStatus(status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	order, err := s.api(r).UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The order status could not be changed."))
		return
	}

	slog.Info("order status changed", "order", order.OrderNumber, "status", status)
	redirectSuccess(w, r, "/admin/orders", "Order "+order.OrderNumber+" is now "+model.OrderStatusName(status)+".")
}
