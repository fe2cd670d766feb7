package booking

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tripandtreat/globals"
	"tripandtreat/middleware"
	"tripandtreat/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func wsTestToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &middleware.Claims{
		Username: "tester",
		UserID:   userID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func wsTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	router.GET("/ws/bookings/:userid", HandleWS)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestHandleWSRejectsAnonymous(t *testing.T) {
	srv := wsTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/bookings/u-victim"), nil)
	if err == nil {
		conn.Close()
		t.Fatal("anonymous dial should not complete the handshake")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", resp)
	}
}

func TestHandleWSRejectsOtherUsersStream(t *testing.T) {
	srv := wsTestServer(t)

	url := wsURL(srv, "/ws/bookings/u-victim?token="+wsTestToken(t, "u-attacker", models.RoleUser))
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		conn.Close()
		t.Fatal("dial for another user's stream should not complete")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp)
	}
}

func TestHandleWSDeliversToOwner(t *testing.T) {
	srv := wsTestServer(t)

	url := wsURL(srv, "/ws/bookings/u-owner?token="+wsTestToken(t, "u-owner", models.RoleUser))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("owner dial failed: %v", err)
	}
	defer conn.Close()

	// the handler registers the subscriber just after the handshake
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(subscribers["u-owner"])
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	notifyBookingUpdate(models.Booking{
		BookingID: "b123",
		UserID:    "u-owner",
		Status:    models.BookingConfirmed,
		Amount:    4200,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("owner never received the update: %v", err)
	}
	if !strings.Contains(string(msg), `"b123"`) || !strings.Contains(string(msg), "u-owner") {
		t.Fatalf("unexpected payload: %s", msg)
	}
}

func TestHandleWSAdmitsAdmin(t *testing.T) {
	srv := wsTestServer(t)

	url := wsURL(srv, "/ws/bookings/u-owner?token="+wsTestToken(t, "u-admin", models.RoleAdmin))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("admin dial failed: %v", err)
	}
	conn.Close()
}
