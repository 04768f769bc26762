package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dermassist/config"
	"dermassist/pkg/response"

	"github.com/sirupsen/logrus"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeTokens) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(config.APIConfig{BaseURL: srv.URL + "/api", RequestTimeout: 2 * time.Second, UploadTimeout: 2 * time.Second}, tokens, log)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		response.Success(w, http.StatusOK, "ok", map[string]string{"id": "p1"})
	}, &fakeTokens{token: "abc"})

	var out struct {
		ID string `json:"id"`
	}
	if _, err := c.Get(context.Background(), "/predictions/p1", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if out.ID != "p1" {
		t.Errorf("out.ID = %q", out.ID)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		response.Success(w, http.StatusOK, "ok", nil)
	}, &fakeTokens{})

	if err := c.Post(context.Background(), "/auth/login", map[string]string{"username": "u"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasAuth {
		t.Error("Authorization header sent without a token")
	}
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	tokens := &fakeTokens{token: "stale"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		response.Unauthorized(w, "Invalid or expired token")
	}, tokens)

	_, err := c.Get(context.Background(), "/notifications", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if tokens.cleared != 1 || tokens.token != "" {
		t.Errorf("session not cleared: cleared=%d token=%q", tokens.cleared, tokens.token)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status   int
		message  string
		sentinel error
		kind     Kind
	}{
		{http.StatusConflict, "A pending review request already exists", ErrConflict, KindConflict},
		{http.StatusNotFound, "Prediction not found", ErrNotFound, KindNotFound},
		{http.StatusForbidden, "", ErrForbidden, KindForbidden},
		{http.StatusInternalServerError, "", ErrServer, KindServer},
		{http.StatusTeapot, "", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				response.Error(w, tt.status, tt.message, nil)
			}, nil)

			err := c.Post(context.Background(), "/review-requests", map[string]string{}, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != tt.kind {
				t.Errorf("kind = %v, want %v", KindOf(err), tt.kind)
			}
			if StatusCodeOf(err) != tt.status {
				t.Errorf("status = %d, want %d", StatusCodeOf(err), tt.status)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
			if tt.message != "" && err.Error() != tt.message {
				t.Errorf("message = %q, want server text %q", err.Error(), tt.message)
			}
			if tt.message == "" && err.Error() != defaultMessages[tt.kind] {
				t.Errorf("message = %q, want default %q", err.Error(), defaultMessages[tt.kind])
			}
		})
	}
}

func TestClient_ValidationFieldsPreserved(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		response.ValidationError(w, map[string]string{"Email": "Email must be a valid email address"})
	}, nil)

	err := c.Post(context.Background(), "/auth/signup", map[string]string{}, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if apiErr.Kind != KindValidation || apiErr.Fields["Email"] == "" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	}, nil)

	_, err := c.Get(context.Background(), "/predictions", nil, nil)
	if KindOf(err) != KindServer || err.Error() != defaultMessages[KindServer] {
		t.Errorf("err = %v (kind %v)", err, KindOf(err))
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	log := logrus.New()
	log.SetOutput(io.Discard)
	c := New(config.APIConfig{BaseURL: srv.URL, RequestTimeout: 50 * time.Millisecond}, nil, log)

	_, err := c.Get(context.Background(), "/slow", nil, nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	c := New(config.APIConfig{BaseURL: url}, nil, log)

	_, err := c.Get(context.Background(), "/predictions", nil, nil)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		response.SuccessWithMeta(w, http.StatusOK, "ok", []string{}, &response.Meta{Limit: 5, Offset: 10, Total: 11})
	}, nil)

	params := struct {
		Status string `url:"status,omitempty"`
		Limit  int    `url:"limit,omitempty"`
		Offset int    `url:"offset,omitempty"`
	}{Status: "pending", Limit: 5, Offset: 10}

	var out []string
	meta, err := c.Get(context.Background(), "/review-requests", params, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "limit=5&offset=10&status=pending" {
		t.Errorf("query = %q", gotQuery)
	}
	if meta == nil || meta.Total != 11 {
		t.Errorf("meta = %+v", meta)
	}
}

func TestClient_UploadMultipart(t *testing.T) {
	var gotField, gotName, gotBody, gotType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		for field, files := range r.MultipartForm.File {
			gotField = field
			gotName = files[0].Filename
			gotType = files[0].Header.Get("Content-Type")
			f, _ := files[0].Open()
			b, _ := io.ReadAll(f)
			gotBody = string(b)
		}
		response.Success(w, http.StatusCreated, "ok", map[string]string{"id": "pred-1"})
	}, nil)

	var out struct {
		ID string `json:"id"`
	}
	err := c.Upload(context.Background(), "/predict", "image", "face.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotField != "image" || gotName != "face.jpg" || gotBody != "jpeg-bytes" || gotType != "image/jpeg" {
		t.Errorf("got field=%q name=%q type=%q body=%q", gotField, gotName, gotType, gotBody)
	}
	if out.ID != "pred-1" {
		t.Errorf("out.ID = %q", out.ID)
	}
}
