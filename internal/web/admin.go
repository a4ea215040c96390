package web

import (
	"net/http"

	"github.com/yutax9/storefront/internal/model"
)

// AdminDashboard handles GET /admin.
func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.api(r).AdminStats(r.Context())
	if err != nil {
		s.backendErrorPage(w, r, err, "The dashboard could not be loaded.")
		return
	}

	s.Templates.Render(w, "admin_dashboard.html", &struct {
		PageData
		Stats    *model.AdminStats
		Statuses []string
	}{s.pageData(r, "Dashboard"), stats, model.OrderStatuses})
}
