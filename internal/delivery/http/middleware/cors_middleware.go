package middleware

import (
	"net/http"
	"strings"
)

type CORSMiddleware struct {
	allowAny bool
	origins  map[string]struct{}
}

// NewCORSMiddleware allows the listed origins. "*" allows any origin; an
// empty list disables CORS headers entirely.
func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]struct{})}
	for _, o := range allowedOrigins {
		if o == "*" {
			m.allowAny = true
			continue
		}
		m.origins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return m
}

func (m *CORSMiddleware) allowed(origin string) bool {
	if m.allowAny {
		return true
	}
	_, ok := m.origins[strings.ToLower(origin)]
	return ok
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, req)
			return
		}

		w.Header().Add("Vary", "Origin")
		if !m.allowed(origin) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, req)
			return
		}

		if m.allowAny {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
