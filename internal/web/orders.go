package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/model"
)

// OrdersPage handles GET /orders. Optional ?status= filters the list.
func (s *Server) OrdersPage(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	orders, err := s.api(r).MyOrders(r.Context(), status)
	if err != nil {
		s.backendErrorPage(w, r, err, "Your orders could not be loaded.")
		return
	}

	s.Templates.Render(w, "orders.html", &struct {
		PageData
		Orders   []model.Order
		Status   string
		Statuses []string
	}{s.pageData(r, "My Orders"), orders, status, model.OrderStatuses})
}

// OrderDetailPage handles GET /orders/{id}.
func (s *Server) OrderDetailPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := s.api(r).GetOrder(r.Context(), id)
	if err != nil {
		s.backendErrorPage(w, r, err, "This order could not be found.")
		return
	}

	s.Templates.Render(w, "order_detail.html", &struct {
		PageData
		Order *model.Order
	}{s.pageData(r, "Order "+order.OrderNumber), order})
}

// OrderCancelSubmit handles POST /orders/{id}/cancel. The backend decides
// whether the order is still cancellable.
func (s *Server) OrderCancelSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := s.api(r).CancelOrder(r.Context(), id); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "This order can no longer be cancelled."))
		return
	}

	redirectSuccess(w, r, fmt.Sprintf("/orders/%d", id), "Order cancelled.")
}
