package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestService() *Service {
	return NewService(nil, "test-secret")
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserIDFromContext(r.Context())))
	})
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	svc := newTestService()
	token, err := svc.issueToken("user_123")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/boards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	svc.AuthMiddleware(echoUserID()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "user_123" {
		t.Errorf("context user ID = %q, want user_123", got)
	}
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	svc := newTestService()
	token, err := svc.issueToken("user_123")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/api/boards", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()

		svc.AuthMiddleware(echoUserID()).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, rec.Code)
		}
	}
}

func TestAuthMiddlewareRejectsForeignSecret(t *testing.T) {
	other := NewService(nil, "some-other-secret")
	token, err := other.issueToken("user_123")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/boards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newTestService().AuthMiddleware(echoUserID()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
