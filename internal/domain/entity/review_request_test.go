package entity

import (
	"errors"
	"testing"
	"time"
)

func TestReviewRequest_CanTransition(t *testing.T) {
	tests := []struct {
		from ReviewStatus
		to   ReviewStatus
		want bool
	}{
		{ReviewStatusPending, ReviewStatusReviewed, true},
		{ReviewStatusPending, ReviewStatusRejected, true},
		{ReviewStatusPending, ReviewStatusPending, false},
		{ReviewStatusReviewed, ReviewStatusRejected, false},
		{ReviewStatusReviewed, ReviewStatusReviewed, false},
		{ReviewStatusRejected, ReviewStatusReviewed, false},
		{ReviewStatusRejected, ReviewStatusPending, false},
	}
	for _, tt := range tests {
		r := &ReviewRequest{Status: tt.from}
		if got := r.CanTransition(tt.to); got != tt.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReviewRequest_MarkReviewed(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &ReviewRequest{ID: "rr-1", Status: ReviewStatusPending}

	if err := r.MarkReviewed("  Mild inflammatory acne  ", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != ReviewStatusReviewed {
		t.Errorf("Status = %q, want reviewed", r.Status)
	}
	if r.Comment != "Mild inflammatory acne" {
		t.Errorf("Comment = %q", r.Comment)
	}
	if r.ReviewedAt == nil || !r.ReviewedAt.Equal(at) {
		t.Errorf("ReviewedAt = %v, want %v", r.ReviewedAt, at)
	}
}

func TestReviewRequest_MarkReviewedRequiresComment(t *testing.T) {
	r := &ReviewRequest{Status: ReviewStatusPending}
	if err := r.MarkReviewed("   ", time.Now()); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("err = %v, want ErrEmptyComment", err)
	}
	if r.Status != ReviewStatusPending {
		t.Errorf("Status = %q, want pending", r.Status)
	}
}

func TestReviewRequest_TerminalStatesRejectMutation(t *testing.T) {
	reviewedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, status := range []ReviewStatus{ReviewStatusReviewed, ReviewStatusRejected} {
		r := &ReviewRequest{Status: status, Comment: "original", ReviewedAt: &reviewedAt}

		if err := r.MarkReviewed("new comment", time.Now()); !errors.Is(err, ErrAlreadyProcessed) {
			t.Errorf("%s: MarkReviewed err = %v, want ErrAlreadyProcessed", status, err)
		}
		if err := r.MarkRejected("reason", time.Now()); !errors.Is(err, ErrAlreadyProcessed) {
			t.Errorf("%s: MarkRejected err = %v, want ErrAlreadyProcessed", status, err)
		}
		if r.Status != status || r.Comment != "original" || !r.ReviewedAt.Equal(reviewedAt) {
			t.Errorf("%s: request mutated: %+v", status, r)
		}
	}
}

func TestReviewRequest_MarkRejected(t *testing.T) {
	r := &ReviewRequest{Status: ReviewStatusPending}
	if err := r.MarkRejected("", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsRejected() || !r.IsTerminal() {
		t.Errorf("Status = %q, want rejected", r.Status)
	}
}
