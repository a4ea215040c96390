package web

import (
	"net/http"
	"strconv"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/model"
)

// AdminShippingZonesPage handles GET /admin/shipping-zones.
func (s *Server) AdminShippingZonesPage(w http.ResponseWriter, r *http.Request) {
	zones, err := s.api(r).ListShippingZones(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Shipping zones could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_shipping_zones.html", &struct {
		PageData
		Zones []model.ShippingZone
	}{s.pageData(r, "Shipping Zones"), zones})
}

// AdminShippingZoneCreateSubmit handles POST /admin/shipping-zones.
func (s *Server) AdminShippingZoneCreateSubmit(w http.ResponseWriter, r *http.Request) {
	input, msg := parseShippingZoneForm(r)
	if msg != "" {
		s.renderShippingZonesError(w, r, msg)
		return
	}

	if _, err := s.api(r).CreateShippingZone(r.Context(), input); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The shipping zone could not be created."))
		return
	}

	redirectSuccess(w, r, "/admin/shipping-zones", "Shipping zone created.")
}

// AdminShippingZoneUpdateSubmit handles POST /admin/shipping-zones/{id}.
func (s *Server) AdminShippingZoneUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	input, msg := parseShippingZoneForm(r)
	if msg != "" {
		s.renderShippingZonesError(w, r, msg)
		return
	}

	if _, err := s.api(r).UpdateShippingZone(r.Context(), id, input); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The shipping zone could not be saved."))
		return
	}

	redirectSuccess(w, r, "/admin/shipping-zones", "Shipping zone saved.")
}

// AdminShippingZoneDeleteSubmit handles POST /admin/shipping-zones/{id}/delete.
func (s *Server) AdminShippingZoneDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.api(r).DeleteShippingZone(r.Context(), id); err != nil {
		s.backendErrorPage(w, r, err, errorMessage(err, "The shipping zone could not be deleted."))
		return
	}

	redirectSuccess(w, r, "/admin/shipping-zones", "Shipping zone deleted.")
}

// parseShippingZoneForm reads and validates the shipping zone form. The
// free-shipping threshold is optional; an empty field means none.
func parseShippingZoneForm(r *http.Request) (*backend.ShippingZoneInput, string) {
	input := &backend.ShippingZoneInput{
		Name:    r.FormValue("name"),
		Country: r.FormValue("country"),
	}

	rate, err := strconv.ParseFloat(r.FormValue("base_rate"), 64)
	if err == nil {
		input.BaseRate = rate
	}
	if raw := r.FormValue("free_shipping_threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, "The free shipping threshold must be a number."
		}
		input.FreeShippingThreshold = &threshold
	}

	switch {
	case input.Name == "" || input.Country == "":
		return input, "Name and country are required."
	case input.BaseRate < 0:
		return input, "The base rate cannot be negative."
	}
	return input, ""
}

// renderShippingZonesError re-renders the zones page with a form error.
func (s *Server) renderShippingZonesError(w http.ResponseWriter, r *http.Request, msg string) {
	zones, err := s.api(r).ListShippingZones(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "Shipping zones could not be loaded.")
		return
	}

	data := s.pageData(r, "Shipping Zones")
	data.Error = msg
	s.Templates.Render(w, "admin_shipping_zones.html", &struct {
		PageData
		Zones []model.ShippingZone
	}{data, zones})
}
