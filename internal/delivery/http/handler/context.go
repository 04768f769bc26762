package handler

import (
	"net/http"
	"strings"

	"dermassist/internal/delivery/http/middleware"
	"dermassist/internal/domain/entity"

	"github.com/gorilla/schema"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// currentUser builds the caller from the claims set by AuthMiddleware.
func currentUser(r *http.Request) (*entity.User, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, false
	}
	role, _ := middleware.GetRoleFromContext(r.Context())
	return &entity.User{ID: userID, Role: role}, true
}

// absoluteURL resolves a server-relative path against the request's host so
// clients can fetch it directly.
func absoluteURL(r *http.Request, path string) string {
	if path == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + path
}

func withImageURL(r *http.Request, p *entity.Prediction) {
	if p != nil {
		p.ImageURL = absoluteURL(r, p.ImageURL)
	}
}
