package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(ts.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestClient_Me(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/me" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":12,"phone":"0541234567","name":"Dana"}}`))
	})

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user == nil || user.ID != 12 || user.Name != "Dana" {
		t.Fatalf("user = %+v", user)
	}
}

func TestClient_MeAnonymous(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":null}`))
	})

	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user != nil {
		t.Fatalf("user = %+v, want nil", user)
	}
}

func TestClient_AuthVerifyRefusal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"message":"wrong code"}`))
	})

	_, err := client.AuthVerify(context.Background(), "0541234567", "111111", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "wrong code" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestClient_DaySlotsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/day-slots" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("date") != "2026-09-02" {
			t.Fatalf("date = %s", r.URL.Query().Get("date"))
		}
		if r.URL.Query().Get("duration") != "30" {
			t.Fatalf("duration = %s", r.URL.Query().Get("duration"))
		}
		_, _ = w.Write([]byte(`{"slots":["10:00","10:30"]}`))
	})

	slots, err := client.DaySlots(context.Background(), "2026-09-02", 30)
	if err != nil {
		t.Fatalf("DaySlots() error = %v", err)
	}
	if len(slots) != 2 || slots[0] != "10:00" {
		t.Fatalf("slots = %v", slots)
	}
}

func TestClient_BookRejectionCarriesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"slot already taken"}`))
	})

	err := client.Book(context.Background(), BookingRequest{
		Date: "2026-09-02", Time: "10:00", DurationMinutes: 30, ServiceName: "Haircut",
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "slot already taken" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestClient_ErrorStatusWithoutBodyMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CancelList(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestClient_CookiePersistsAcrossCalls(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Path {
		case "/api/auth/verify":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
			_, _ = w.Write([]byte(`{"ok":true,"user":{"id":1,"phone":"0541234567","name":"Dana"}}`))
		case "/api/cancel/list":
			c, err := r.Cookie("session")
			if err != nil || c.Value != "abc" {
				t.Fatalf("session cookie missing on second call: %v", err)
			}
			_, _ = w.Write([]byte(`{"appointments":[]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	if _, err := client.AuthVerify(context.Background(), "0541234567", "123456", ""); err != nil {
		t.Fatalf("AuthVerify() error = %v", err)
	}
	if _, err := client.CancelList(context.Background()); err != nil {
		t.Fatalf("CancelList() error = %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d", calls)
	}
}
