package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/cart"
	"github.com/yutax9/storefront/internal/model"
	"github.com/yutax9/storefront/internal/session"
)

// CheckoutPage handles GET /checkout. An empty cart redirects back to the
// cart page. Selecting a shipping zone (?zone=) previews the shipping
// cost for the current cart total.
func (s *Server) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	c := s.currentCart(r)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	api := s.api(r)
	zones, err := api.ListShippingZones(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Checkout is unavailable right now.")
		return
	}

	var (
		quote  *model.ShippingQuote
		zoneID int64
	)
	if raw := r.URL.Query().Get("zone"); raw != "" {
		zoneID, err = strconv.ParseInt(raw, 10, 64)
		if err == nil {
			quote, err = api.CalculateShipping(r.Context(), zoneID, c.Total())
			if err != nil {
				slog.Error("shipping preview failed", "zone", zoneID, "error", err)
				quote = nil
			}
		}
	}

	s.Templates.Render(w, "checkout.html", &struct {
		PageData
		Cart   *cart.Cart
		Zones  []model.ShippingZone
		ZoneID int64
		Quote  *model.ShippingQuote
	}{s.pageData(r, "Checkout"), c, zones, zoneID, quote})
}

// CheckoutSubmit handles POST /checkout. The backend validates stock and
// prices; the local cart is only cleared after the order is accepted.
func (s *Server) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	c := s.currentCart(r)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	address := r.FormValue("shipping_address")
	notes := r.FormValue("notes")
	if address == "" {
		data := s.pageData(r, "Checkout")
		data.Error = "A shipping address is required."

		zones, err := s.api(r).ListShippingZones(r.Context())
		if err != nil {
			zones = nil
		}
		s.Templates.Render(w, "checkout.html", &struct {
			PageData
			Cart   *cart.Cart
			Zones  []model.ShippingZone
			ZoneID int64
			Quote  *model.ShippingQuote
		}{data, c, zones, 0, nil})
		return
	}

	order := &model.NewOrder{ShippingAddress: address, Notes: notes}
	for _, item := range c.Items {
		order.Items = append(order.Items, model.NewOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.api(r).CreateOrder(r.Context(), order)
	if err != nil {
		if s.handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("order creation failed", "error", err)
		data := s.pageData(r, "Checkout")
		data.Error = errorMessage(err, "The order could not be placed. Please try again.")

		zones, zerr := s.api(r).ListShippingZones(r.Context())
		if zerr != nil {
			zones = nil
		}
		s.Templates.Render(w, "checkout.html", &struct {
			PageData
			Cart   *cart.Cart
			Zones  []model.ShippingZone
			ZoneID int64
			Quote  *model.ShippingQuote
		}{data, c, zones, 0, nil})
		return
	}

	c.Clear()
	s.saveCart(r, sess, c)
	s.Metrics.RecordOrderPlaced(r.Context())
	slog.Info("order placed", "order", created.OrderNumber, "user", sess.Username)

	redirectSuccess(w, r, fmt.Sprintf("/orders/%d", created.ID), "Order placed. Thank you!")
}
