package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuccessWithMeta_RoundTripsThroughEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, http.StatusOK, "ok", []string{"a", "b"}, &Meta{Limit: 2, Offset: 4, Total: 9})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Meta == nil || env.Meta.Total != 9 || env.Meta.Offset != 4 {
		t.Errorf("envelope = %+v", env)
	}
	var data []string
	if err := json.Unmarshal(env.Data, &data); err != nil || len(data) != 2 {
		t.Errorf("data = %s (%v)", env.Data, err)
	}
}

func TestErrorHelpers_DefaultMessages(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		msg    string
	}{
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "") }, http.StatusConflict, "Conflict"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "") }, http.StatusNotFound, "Resource not found"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "") }, http.StatusUnauthorized, "Unauthorized"},
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "comment is required") }, http.StatusBadRequest, "comment is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var env Envelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Success || env.Message != tt.msg {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}
