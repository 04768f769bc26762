package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{"no origin passes through", []string{"https://app.example.com"}, http.MethodGet, "", http.StatusOK, ""},
		{"listed origin echoed", []string{"https://app.example.com/"}, http.MethodGet, "https://App.example.com", http.StatusOK, "https://App.example.com"},
		{"unlisted origin gets no header", []string{"https://app.example.com"}, http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"preflight from listed origin", []string{"https://app.example.com"}, http.MethodOptions, "https://app.example.com", http.StatusNoContent, "https://app.example.com"},
		{"preflight from unlisted origin", []string{"https://app.example.com"}, http.MethodOptions, "https://evil.example.com", http.StatusForbidden, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example.com", http.StatusOK, "*"},
		{"empty list disables", nil, http.MethodOptions, "https://app.example.com", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCORSMiddleware(tt.allowed).Handle(ok)
			req := httptest.NewRequest(tt.method, "/api/predictions", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowed {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllowed)
			}
		})
	}
}
