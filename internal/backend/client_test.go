package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yutax9/storefront/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(model.User{ID: 1, Username: "jdoe"})
	}))

	authed := client.WithAuth(&Auth{Access: "tok", Refresh: "ref"})
	user, err := authed.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("expected 'Bearer tok', got %q", gotAuth)
	}
	if user.Username != "jdoe" {
		t.Errorf("unexpected profile: %+v", user)
	}
}

func TestRefreshAndRetryOn401(t *testing.T) {
	var profileCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/profile/", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
			return
		}
		json.NewEncoder(w).Encode(model.User{ID: 1, Username: "jdoe"})
	})
	mux.HandleFunc("POST /auth/access/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		if r.Header.Get("Authorization") != "" {
			t.Error("refresh request must not carry a bearer token")
		}
		var body struct {
			Refresh string `json:"refresh"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Refresh != "ref" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
	})

	client := testClient(t, mux)

	var persisted string
	auth := &Auth{
		Access:  "stale",
		Refresh: "ref",
		OnRefresh: func(_ context.Context, access string) {
			persisted = access
		},
	}

	user, err := client.WithAuth(auth).Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile after refresh: %v", err)
	}
	if user.Username != "jdoe" {
		t.Errorf("unexpected profile: %+v", user)
	}
	if profileCalls != 2 || refreshCalls != 1 {
		t.Errorf("expected 2 profile calls and 1 refresh, got %d and %d", profileCalls, refreshCalls)
	}
	if auth.Access != "fresh" || persisted != "fresh" {
		t.Errorf("expected refreshed token persisted, got %q / %q", auth.Access, persisted)
	}
}

func TestRefreshFailurePropagatesOriginalError(t *testing.T) {
	var profileCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/profile/", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})
	mux.HandleFunc("POST /auth/access/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "refresh expired"})
	})

	client := testClient(t, mux)
	_, err := client.WithAuth(&Auth{Access: "stale", Refresh: "ref"}).Profile(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	var apiErr *APIError
	errors.As(err, &apiErr)
	if apiErr.Message != "token expired" {
		t.Errorf("expected the original error message, got %q", apiErr.Message)
	}
	// Only the single refresh-and-retry: one original call, no retry after
	// the failed refresh.
	if profileCalls != 1 {
		t.Errorf("expected 1 profile call, got %d", profileCalls)
	}
}

func TestNo401RetryWithoutRefreshToken(t *testing.T) {
	var calls int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Profile(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no retry without a refresh token, got %d calls", calls)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "not found"})
	}))

	_, err := client.GetProduct(context.Background(), 99)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "not found" {
		t.Errorf("expected detail message, got %q", apiErr.Message)
	}
}

func TestListProductsFilters(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "mug" || q.Get("category") != "3" ||
			q.Get("min_price") != "5" || q.Get("in_stock") != "true" ||
			q.Get("ordering") != "price" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]model.Product{{ID: 1, Name: "Mug"}})
	}))

	products, err := client.ListProducts(context.Background(), model.ProductFilter{
		Search:   "mug",
		Category: "3",
		MinPrice: "5",
		InStock:  true,
		Ordering: "price",
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Mug" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestCreateOrderBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var order model.NewOrder
		json.NewDecoder(r.Body).Decode(&order)
		if order.ShippingAddress != "1 Main St" || len(order.Items) != 1 || order.Items[0].Quantity != 2 {
			t.Errorf("unexpected order body: %+v", order)
		}
		json.NewEncoder(w).Encode(model.Order{ID: 7, OrderNumber: "ORD-7", Status: model.OrderPending})
	}))

	created, err := client.CreateOrder(context.Background(), &model.NewOrder{
		ShippingAddress: "1 Main St",
		Items:           []model.NewOrderItem{{ProductID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if created.OrderNumber != "ORD-7" {
		t.Errorf("unexpected order: %+v", created)
	}
}

func TestCalculateShipping(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ZoneID    int64   `json:"shipping_zone_id"`
			CartTotal float64 `json:"cart_total"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.ZoneID != 2 || body.CartTotal != 80 {
			t.Errorf("unexpected body: %+v", body)
		}
		json.NewEncoder(w).Encode(model.ShippingQuote{ShippingCost: 0, IsFree: true})
	}))

	quote, err := client.CalculateShipping(context.Background(), 2, 80)
	if err != nil {
		t.Fatalf("CalculateShipping: %v", err)
	}
	if !quote.IsFree {
		t.Errorf("expected free shipping, got %+v", quote)
	}
}

func TestOnCallObserver(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Category{})
	}))

	var observed []int
	client.OnCall(func(_ context.Context, method, path string, status int, _ time.Duration) {
		if method != http.MethodGet || path != "/categories/" {
			t.Errorf("unexpected call observed: %s %s", method, path)
		}
		observed = append(observed, status)
	})

	if _, err := client.ListCategories(context.Background()); err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(observed) != 1 || observed[0] != http.StatusOK {
		t.Errorf("unexpected observations: %v", observed)
	}
}
