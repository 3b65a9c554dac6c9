package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestRequireAuth(t *testing.T) {
	v, err := NewValidator(ValidatorConfig{Key: testKey})
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}

	var gotPrincipal string
	handler := RequireAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := IdentityFromContext(r.Context()); ok {
			gotPrincipal = identity.Principal
		}
		w.WriteHeader(http.StatusOK)
	}))

	token := signToken(t, testKey, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "oncall-operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/cache/warm", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotPrincipal != "oncall-operator" {
		t.Errorf("principal in context = %q, want oncall-operator", gotPrincipal)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	v, err := NewValidator(ValidatorConfig{Key: testKey})
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}

	reached := false
	handler := RequireAuth(v)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reached = true
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cache/warm", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
	if reached {
		t.Error("handler reached despite rejection")
	}
}

func TestIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := IdentityFromContext(req.Context()); ok {
		t.Error("IdentityFromContext() = true on bare context, want false")
	}
}
