package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yutax9/storefront/internal/db"
	"github.com/yutax9/storefront/internal/store"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{DB: db.NewTestDB(t), Secret: "test-secret"}
}

// backendToken builds an unsigned-verification stand-in for a backend JWT
// with the given expiry.
func backendToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", "sess-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("expected session id 'sess-1', got %q", claims.SessionID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret", "sess-1")
	if _, err := ValidateToken("other", token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	if TokenExpired(backendToken(t, time.Now().Add(time.Hour))) {
		t.Error("future token must not be expired")
	}
	if !TokenExpired(backendToken(t, time.Now().Add(-time.Hour))) {
		t.Error("past token must be expired")
	}
	if !TokenExpired("garbage") {
		t.Error("unparseable token counts as expired")
	}
}

func TestIssueAndResolve(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	created, err := m.Issue(context.Background(), rec, &store.Session{UserID: 1, Username: "jdoe"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	var resolved *store.Session
	handler := m.WithSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = FromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if resolved == nil || resolved.ID != created.ID || resolved.Username != "jdoe" {
		t.Errorf("unexpected resolved session: %+v", resolved)
	}
}

func TestWithSessionInvalidCookie(t *testing.T) {
	m := testManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "bogus"})

	var resolved *store.Session
	rec := httptest.NewRecorder()
	m.WithSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = FromContext(r.Context())
	})).ServeHTTP(rec, req)

	if resolved != nil {
		t.Errorf("expected nil session for invalid cookie, got %+v", resolved)
	}

	// The dangling cookie gets cleared.
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("expected cookie to be cleared, got %v", cookies)
	}
}

func TestRequireUserRedirectsGuests(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	m.WithSession(m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for guests")
	}))).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRequireUserExpiredRefreshTokenDestroysSession(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	created, err := m.Issue(context.Background(), rec, &store.Session{
		UserID:       1,
		Username:     "jdoe",
		RefreshToken: backendToken(t, time.Now().Add(-time.Minute)),
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	rec2 := httptest.NewRecorder()
	m.WithSession(m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an expired refresh token")
	}))).ServeHTTP(rec2, req)

	if rec2.Header().Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %q", rec2.Header().Get("Location"))
	}

	gone, _ := store.GetSession(context.Background(), m.DB, created.ID)
	if gone != nil {
		t.Error("expected session row to be deleted")
	}
}

func TestRequireStaff(t *testing.T) {
	m := testManager(t)

	issue := func(t *testing.T, isStaff bool) *http.Cookie {
		rec := httptest.NewRecorder()
		_, err := m.Issue(context.Background(), rec, &store.Session{
			UserID:       1,
			IsStaff:      isStaff,
			RefreshToken: backendToken(t, time.Now().Add(time.Hour)),
		})
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		return rec.Result().Cookies()[0]
	}

	// Non-staff gets bounced home.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(issue(t, false))
	rec := httptest.NewRecorder()
	m.WithSession(m.RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for non-staff")
	}))).ServeHTTP(rec, req)
	if rec.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %q", rec.Header().Get("Location"))
	}

	// Staff passes through.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(issue(t, true))
	rec = httptest.NewRecorder()
	ran := false
	m.WithSession(m.RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))).ServeHTTP(rec, req)
	if !ran {
		t.Error("expected handler to run for staff")
	}
}

func TestEnsureCreatesGuestSession(t *testing.T) {
	m := testManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	s, err := m.Ensure(rec, req)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if s.ID == "" || s.IsAuthenticated() {
		t.Errorf("expected anonymous session with id, got %+v", s)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected guest session cookie to be set")
	}
}
