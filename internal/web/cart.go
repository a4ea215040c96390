package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/cart"
)

// CartPage handles GET /cart.
func (s *Server) CartPage(w http.ResponseWriter, r *http.Request) {
	c := s.currentCart(r)
	s.Templates.Render(w, "cart.html", &struct {
		PageData
		Cart *cart.Cart
	}{s.pageData(r, "Cart"), c})
}

// CartAdd handles POST /cart/add. The product snapshot is fetched fresh
// so the clamp uses the latest known stock. Guests get a session on their
// first add.
func (s *Server) CartAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product", http.StatusBadRequest)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	sess, err := s.Sessions.Ensure(w, r)
	if err != nil {
		slog.Error("failed to create guest session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	product, err := s.api(r).GetProduct(r.Context(), productID)
	if err != nil {
		s.backendErrorPage(w, r, err, "This product could not be found.")
		return
	}

	c := s.currentCart(r)
	c.Add(product, quantity)
	s.saveCart(r, sess, c)
	s.Metrics.RecordCartAdd(r.Context(), quantity)

	redirectSuccess(w, r, "/cart", "Added to cart.")
}

// CartUpdate handles POST /cart/update. A quantity below 1 removes the
// line.
func (s *Server) CartUpdate(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product", http.StatusBadRequest)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	sess, err := s.Sessions.Ensure(w, r)
	if err != nil {
		slog.Error("failed to create guest session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	c := s.currentCart(r)
	c.UpdateQuantity(productID, quantity)
	s.saveCart(r, sess, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartRemove handles POST /cart/remove.
func (s *Server) CartRemove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product", http.StatusBadRequest)
		return
	}

	sess, err := s.Sessions.Ensure(w, r)
	if err != nil {
		slog.Error("failed to create guest session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	c := s.currentCart(r)
	c.Remove(productID)
	s.saveCart(r, sess, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartClear handles POST /cart/clear.
func (s *Server) CartClear(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Ensure(w, r)
	if err != nil {
		slog.Error("failed to create guest session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	c := s.currentCart(r)
	c.Clear()
	s.saveCart(r, sess, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
