package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripandtreat/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func okHandler(called *bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	rec := httptest.NewRecorder()

	Authenticate(okHandler(&called))(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not run without a token")
	}
}

func TestAuthenticateBadFormat(t *testing.T) {
	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	req.Header.Set("Authorization", signToken(t, "u1", "user"))
	rec := httptest.NewRecorder()

	Authenticate(okHandler(&called))(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing Bearer prefix, got %d", rec.Code)
	}
}

func TestAuthenticateSetsContext(t *testing.T) {
	var gotUser, gotRole string
	handler := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", "host"))
	rec := httptest.NewRecorder()

	Authenticate(handler)(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "u42" || gotRole != "host" {
		t.Fatalf("context carried %q/%q, want u42/host", gotUser, gotRole)
	}
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	claims := &Claims{UserID: "u1", Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/itinerary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	called := false
	Authenticate(okHandler(&called))(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signing key, got %d", rec.Code)
	}
	if called {
		t.Fatal("handler should not run for a tampered token")
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{"user", http.StatusForbidden},
		{"host", http.StatusForbidden},
		{"admin", http.StatusOK},
	}

	for _, tc := range cases {
		called := false
		req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", tc.role))
		rec := httptest.NewRecorder()

		RequireAdmin(okHandler(&called))(rec, req, nil)

		if rec.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, rec.Code)
		}
		if called != (tc.want == http.StatusOK) {
			t.Fatalf("role %s: handler called = %v", tc.role, called)
		}
	}
}

func TestRequireHostAdmitsAdmin(t *testing.T) {
	cases := []struct {
		role string
		want int
	}{
		{"user", http.StatusForbidden},
		{"host", http.StatusOK},
		{"admin", http.StatusOK},
	}

	for _, tc := range cases {
		called := false
		req := httptest.NewRequest(http.MethodPost, "/api/hotspots", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", tc.role))
		rec := httptest.NewRecorder()

		RequireHost(okHandler(&called))(rec, req, nil)

		if rec.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, rec.Code)
		}
	}
}

func TestValidateJWT(t *testing.T) {
	raw := signToken(t, "u7", "host")

	for _, token := range []string{raw, "Bearer " + raw} {
		claims, err := ValidateJWT(token)
		if err != nil {
			t.Fatalf("ValidateJWT(%q): %v", token, err)
		}
		if claims.UserID != "u7" || claims.Role != "host" {
			t.Fatalf("got claims %q/%q, want u7/host", claims.UserID, claims.Role)
		}
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "Bearer ", "not-a-token", "Bearer not-a-token"} {
		if _, err := ValidateJWT(token); err == nil {
			t.Fatalf("ValidateJWT(%q) should fail", token)
		}
	}
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	claims := &Claims{UserID: "u1", Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Fatal("token signed with the wrong key should fail")
	}
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	called := false
	req := httptest.NewRequest(http.MethodPost, "/api/suggest/itinerary", nil)
	rec := httptest.NewRecorder()

	OptionalAuth(okHandler(&called))(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous request, got %d", rec.Code)
	}
	if !called {
		t.Fatal("handler should run without a token")
	}
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	var gotUser string
	handler := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/suggest/itinerary", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	OptionalAuth(handler)(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 even with a garbage token, got %d", rec.Code)
	}
	if gotUser != "" {
		t.Fatalf("no identity should be attached, got %q", gotUser)
	}
}
