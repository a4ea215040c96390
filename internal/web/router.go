package web

import (
	"database/sql"
	"net/http"

	"github.com/yutax9/storefront/internal/backend"
	"github.com/yutax9/storefront/internal/metrics"
	"github.com/yutax9/storefront/internal/session"
	webembed "github.com/yutax9/storefront/web"
)

// NewRouter creates the page router with all routes registered.
func NewRouter(db *sql.DB, client *backend.Client, sessions *session.Manager, appMetrics *metrics.AppMetrics) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Backend:   client,
		Sessions:  sessions,
		Templates: templates,
		Metrics:   appMetrics,
	}

	mux := http.NewServeMux()
	requireUser := sessions.RequireUser
	requireStaff := sessions.RequireStaff

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Storefront (guests allowed).
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /products", s.ProductsPage)
	mux.HandleFunc("GET /products/{id}", s.ProductDetailPage)

	// Account.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("GET /forgot-password", s.ForgotPasswordPage)
	mux.HandleFunc("POST /forgot-password", s.ForgotPasswordSubmit)
	mux.HandleFunc("GET /reset-password/{uid}/{token}", s.ResetPasswordPage)
	mux.HandleFunc("POST /reset-password/{uid}/{token}", s.ResetPasswordSubmit)

	// Cart (guests allowed; a guest session is created on first mutation).
	mux.HandleFunc("GET /cart", s.CartPage)
	mux.HandleFunc("POST /cart/add", s.CartAdd)
	mux.HandleFunc("POST /cart/update", s.CartUpdate)
	mux.HandleFunc("POST /cart/remove", s.CartRemove)
	mux.HandleFunc("POST /cart/clear", s.CartClear)

	// Authenticated routes.
	mux.Handle("GET /checkout", requireUser(http.HandlerFunc(s.CheckoutPage)))
	mux.Handle("POST /checkout", requireUser(http.HandlerFunc(s.CheckoutSubmit)))
	mux.Handle("GET /orders", requireUser(http.HandlerFunc(s.OrdersPage)))
	mux.Handle("GET /orders/{id}", requireUser(http.HandlerFunc(s.OrderDetailPage)))
	mux.Handle("POST /orders/{id}/cancel", requireUser(http.HandlerFunc(s.OrderCancelSubmit)))
	mux.Handle("GET /profile", requireUser(http.HandlerFunc(s.ProfilePage)))
	mux.Handle("POST /profile", requireUser(http.HandlerFunc(s.ProfileUpdateSubmit)))
	mux.Handle("POST /profile/password", requireUser(http.HandlerFunc(s.PasswordChangeSubmit)))

	// Staff-only admin routes.
	mux.Handle("GET /admin", requireStaff(http.HandlerFunc(s.AdminDashboard)))

	mux.Handle("GET /admin/products", requireStaff(http.HandlerFunc(s.AdminProductsPage)))
	mux.Handle("GET /admin/products/new", requireStaff(http.HandlerFunc(s.AdminProductNewPage)))
	mux.Handle("POST /admin/products/new", requireStaff(http.HandlerFunc(s.AdminProductCreateSubmit)))
	mux.Handle("GET /admin/products/{id}/edit", requireStaff(http.HandlerFunc(s.AdminProductEditPage)))
	mux.Handle("POST /admin/products/{id}/edit", requireStaff(http.HandlerFunc(s.AdminProductUpdateSubmit)))
	mux.Handle("POST /admin/products/{id}/delete", requireStaff(http.HandlerFunc(s.AdminProductDeleteSubmit)))

	mux.Handle("GET /admin/categories", requireStaff(http.HandlerFunc(s.AdminCategoriesPage)))
	mux.Handle("POST /admin/categories", requireStaff(http.HandlerFunc(s.AdminCategoryCreateSubmit)))
	mux.Handle("POST /admin/categories/{id}", requireStaff(http.HandlerFunc(s.AdminCategoryUpdateSubmit)))
	mux.Handle("POST /admin/categories/{id}/delete", requireStaff(http.HandlerFunc(s.AdminCategoryDeleteSubmit)))

	mux.Handle("GET /admin/orders", requireStaff(http.HandlerFunc(s.AdminOrdersPage)))
	mux.Handle("POST /admin/orders/{id}/status", requireStaff(http.HandlerFunc(s.AdminOrderStatusSubmit)))

	mux.Handle("GET /admin/shipping-zones", requireStaff(http.HandlerFunc(s.AdminShippingZonesPage)))
	mux.Handle("POST /admin/shipping-zones", requireStaff(http.HandlerFunc(s.AdminShippingZoneCreateSubmit)))
	mux.Handle("POST /admin/shipping-zones/{id}", requireStaff(http.HandlerFunc(s.AdminShippingZoneUpdateSubmit)))
	mux.Handle("POST /admin/shipping-zones/{id}/delete", requireStaff(http.HandlerFunc(s.AdminShippingZoneDeleteSubmit)))

	mux.Handle("GET /admin/inventory", requireStaff(http.HandlerFunc(s.AdminInventoryPage)))
	mux.Handle("POST /admin/inventory/{id}/stock", requireStaff(http.HandlerFunc(s.AdminStockSubmit)))

	return sessions.WithSession(mux), nil
}
