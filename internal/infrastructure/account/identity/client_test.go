package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
	"github.com/Baguimon/STYX-sub000/internal/platform/resilience"
	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

func newTestClient(srv *httptest.Server, circuit resilience.CircuitBreakerConfig) *Client {
	return NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
		CacheTTL:       time.Minute,
		Circuit:        circuit,
	}, logging.NewNop())
}

func TestClientVerifyAccessToken_ParsesPrincipal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":       true,
			"user_id":      "user-123",
			"display_name": " Karim ",
			"roles":        []string{"player", "Admin"},
		})
	}))
	defer srv.Close()

	principal, err := newTestClient(srv, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.DisplayName != "Karim" || !principal.IsAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestClientVerifyAccessToken_CachesByToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-1"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "same-token"); err != nil {
			t.Fatalf("verify: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one introspection call, got %d", got)
	}
}

func TestClientVerifyAccessToken_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "inactive token", status: http.StatusOK, body: `{"active":false}`, want: usecase.ErrUnauthorized},
		{name: "denied", status: http.StatusUnauthorized, body: `{}`, want: usecase.ErrUnauthorized},
		{name: "server error", status: http.StatusBadGateway, body: `oops`, want: usecase.ErrDependencyUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "token")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 4; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected the open circuit to stop calls after 2, got %d", got)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, Config{BaseURL: "http://identity.invalid"}, nil)
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	if got := buildURL("http://id.local/", "v1/auth/introspect"); got != "http://id.local/v1/auth/introspect" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := buildURL("http://id.local", "https://other/introspect"); got != "https://other/introspect" {
		t.Fatalf("expected absolute path to win, got %s", got)
	}
}
