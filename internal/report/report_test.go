package report

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"dermassist/config"
	"dermassist/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func samplePrediction(label string, confidence float64) *entity.Prediction {
	return &entity.Prediction{
		ID:     "pred-1",
		UserID: "user-1",
		Result: entity.PredictionResult{
			PredictedLabel:  label,
			ConfidenceScore: confidence,
			Probabilities:   map[string]float64{label: confidence, "eczema": 1 - confidence},
		},
		ImageURL:  "http://localhost:8080/api/images/pred-1",
		CreatedAt: fixedNow.Add(-time.Hour),
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		score float64
		level string
		text  string
	}{
		{0.95, LevelHigh, "95.00%"},
		{0.80, LevelHigh, "80.00%"},
		{0.7999, LevelModerate, "79.99%"},
		{0.73, LevelModerate, "73.00%"},
		{0.50, LevelModerate, "50.00%"},
		{0.4999, LevelLow, "49.99%"},
		{0, LevelLow, "0.00%"},
	}
	for _, tt := range tests {
		level, _ := ConfidenceLevel(tt.score)
		if level != tt.level {
			t.Errorf("ConfidenceLevel(%v) = %s, want %s", tt.score, level, tt.level)
		}
		if got := FormatConfidence(tt.score); got != tt.text {
			t.Errorf("FormatConfidence(%v) = %s, want %s", tt.score, got, tt.text)
		}
	}
}

func TestBuildData_Fallbacks(t *testing.T) {
	data := BuildData(Input{Prediction: samplePrediction("seborrheic_dermatitis", 0.73), PatientName: "Jane Doe"}, fixedNow)

	if data.Condition != "Seborrheic Dermatitis" {
		t.Errorf("Condition = %q", data.Condition)
	}
	if data.Confidence != "73.00%" || data.ConfidenceLevel != LevelModerate {
		t.Errorf("confidence = %s %s", data.Confidence, data.ConfidenceLevel)
	}
	if len(data.Treatments) != 1 || data.Treatments[0] != NoTreatmentMessage {
		t.Errorf("Treatments = %v", data.Treatments)
	}
	if len(data.Prevention) != 4 {
		t.Errorf("Prevention has %d tips, want 4", len(data.Prevention))
	}
	if len(data.Resources) != 2 {
		t.Errorf("Resources has %d links, want 2", len(data.Resources))
	}
	if data.Review.Reviewed || data.Review.Message != NotReviewedMessage {
		t.Errorf("Review = %+v", data.Review)
	}
	if data.Patient.Name != "Jane Doe" || data.Patient.Age != "N/A" || data.Patient.MedicalRecordNumber != "N/A" {
		t.Errorf("Patient = %+v", data.Patient)
	}
	if !regexp.MustCompile(`^RPT-20260314-[0-9A-F]{8}$`).MatchString(data.ReportID) {
		t.Errorf("ReportID = %q", data.ReportID)
	}
	if len(data.Probabilities) != 2 || data.Probabilities[0].Condition != "Seborrheic Dermatitis" {
		t.Errorf("Probabilities = %+v", data.Probabilities)
	}
}

func TestBuildData_WithTreatmentAndReview(t *testing.T) {
	reviewedAt := fixedNow.Add(-10 * time.Minute)
	in := Input{
		Prediction: samplePrediction("acne", 0.91),
		Treatment: &entity.TreatmentSuggestion{
			Condition:  "acne",
			Treatments: []string{"Benzoyl peroxide", "Adapalene"},
		},
		Review: &entity.ReviewRequest{
			Status:        entity.ReviewStatusReviewed,
			Comment:       "  Looks like mild acne.  ",
			ReviewedAt:    &reviewedAt,
			Dermatologist: &entity.User{Username: "drsmith", FullName: "Dr. Smith"},
		},
	}
	data := BuildData(in, fixedNow)

	if len(data.Treatments) != 2 {
		t.Errorf("Treatments = %v", data.Treatments)
	}
	// Empty prevention in the suggestion still falls back.
	if len(data.Prevention) != 4 {
		t.Errorf("Prevention = %v", data.Prevention)
	}
	if !data.Review.Reviewed || data.Review.Comment != "Looks like mild acne." || data.Review.Reviewer != "Dr. Smith" {
		t.Errorf("Review = %+v", data.Review)
	}
	if data.ConfidenceLevel != LevelHigh {
		t.Errorf("ConfidenceLevel = %s", data.ConfidenceLevel)
	}
}

func TestBuildData_RejectedReviewShowsReason(t *testing.T) {
	in := Input{
		Prediction: samplePrediction("acne", 0.3),
		Review:     &entity.ReviewRequest{Status: entity.ReviewStatusRejected, RejectionReason: "Image too blurry"},
	}
	data := BuildData(in, fixedNow)
	if data.Review.Reviewed {
		t.Fatal("rejected request rendered as reviewed")
	}
	if !strings.Contains(data.Review.Note, "Image too blurry") {
		t.Errorf("Note = %q", data.Review.Note)
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	data := BuildData(Input{Prediction: samplePrediction("acne", 0.6), PatientName: "<script>alert(1)</script>"}, fixedNow)
	html, err := Render(data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := string(html)
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Error("patient name rendered unescaped")
	}
	for _, want := range []string{"Skin Analysis Report", data.ReportID, "60.00%", NoTreatmentMessage, NotReviewedMessage} {
		if !strings.Contains(s, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestPlacer_Dir(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{config.PlatformAndroid, "/storage/emulated/0/Download"},
		{config.PlatformIOS, filepath.Join("/home/u", "Documents")},
		{config.PlatformDesktop, filepath.Join("/home/u", "Downloads")},
	}
	for _, tt := range tests {
		p := Placer{Platform: tt.platform, Home: "/home/u"}
		if got := p.Dir(); got != tt.want {
			t.Errorf("%s: Dir() = %q, want %q", tt.platform, got, tt.want)
		}
	}
	if got := (Placer{Platform: config.PlatformAndroid, Override: "/tmp/x"}).Dir(); got != "/tmp/x" {
		t.Errorf("override ignored: %q", got)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("seborrheic_dermatitis", fixedNow); got != "SkinReport_Seborrheic_Dermatitis_20260314-092653.pdf" {
		t.Errorf("FileName = %q", got)
	}
}

type fakeConverter struct {
	err   error
	calls int
}

func (f *fakeConverter) Convert(_ context.Context, html []byte, dst string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, html, 0o600)
}

type fakeSharer struct {
	err            error
	path           string
	title, message string
}

func (f *fakeSharer) Share(_ context.Context, path, title, message string) error {
	f.path, f.title, f.message = path, title, message
	return f.err
}

func newTestService(t *testing.T, conv Converter, sharer Sharer) (*Service, string) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	downloads := t.TempDir()
	svc := NewService(conv, Placer{Override: downloads}, sharer, t.TempDir(), log)
	svc.now = func() time.Time { return fixedNow }
	return svc, downloads
}

func TestService_DownloadReplacesExistingFile(t *testing.T) {
	svc, downloads := newTestService(t, &fakeConverter{}, &fakeSharer{})
	dst := filepath.Join(downloads, FileName("acne", fixedNow))
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := svc.Download(context.Background(), Input{Prediction: samplePrediction("acne", 0.73)})
	if !res.IsSuccess() {
		t.Fatalf("Download failed: %s", res.Message())
	}
	if res.Data() != dst {
		t.Errorf("path = %q, want %q", res.Data(), dst)
	}
	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) == "old" || !strings.Contains(string(content), "73.00%") {
		t.Error("existing file was not replaced with the new report")
	}

	leftovers, _ := os.ReadDir(svc.tempDir)
	if len(leftovers) != 0 {
		t.Errorf("temp dir not cleaned: %d files", len(leftovers))
	}
}

func TestService_DownloadIntoTempDir(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	dir := t.TempDir()
	svc := NewService(&fakeConverter{}, Placer{Override: dir}, &fakeSharer{}, dir, log)
	svc.now = func() time.Time { return fixedNow }

	res := svc.Download(context.Background(), Input{Prediction: samplePrediction("acne", 0.73)})
	if !res.IsSuccess() {
		t.Fatalf("Download failed: %s", res.Message())
	}
	want := filepath.Join(dir, FileName("acne", fixedNow))
	if res.Data() != want {
		t.Errorf("path = %q, want %q", res.Data(), want)
	}
	content, err := os.ReadFile(want)
	if err != nil || !strings.Contains(string(content), "73.00%") {
		t.Fatalf("report not saved: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir holds %d entries, want only the report", len(entries))
	}
}

func TestCopyFile_RemovesPartialDestination(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.pdf")

	// Reading a directory fails after the destination is created.
	if err := copyFile(dir, dst); err == nil {
		t.Fatal("expected error copying a directory")
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("partial destination left behind: %v", err)
	}
}

func TestService_DownloadConverterFailure(t *testing.T) {
	svc, _ := newTestService(t, &fakeConverter{err: errors.New("wkhtmltopdf exited 1")}, &fakeSharer{})

	res := svc.Download(context.Background(), Input{Prediction: samplePrediction("acne", 0.73)})
	if res.IsSuccess() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Message(), "wkhtmltopdf exited 1") {
		t.Errorf("message = %q, want underlying cause", res.Message())
	}
}

func TestService_Share(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		success bool
	}{
		{"shared", nil, true},
		{"cancelled", ErrShareCancelled, true},
		{"failed", errors.New("no share target"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sharer := &fakeSharer{err: tt.err}
			svc, _ := newTestService(t, &fakeConverter{}, sharer)

			res := svc.Share(context.Background(), Input{Prediction: samplePrediction("acne", 0.73)})
			if res.IsSuccess() != tt.success {
				t.Fatalf("IsSuccess() = %v, want %v (%s)", res.IsSuccess(), tt.success, res.Message())
			}
			if sharer.title != ShareTitle || sharer.message != ShareMessage {
				t.Errorf("share sheet = %q / %q", sharer.title, sharer.message)
			}
			if !strings.HasSuffix(sharer.path, ".pdf") {
				t.Errorf("shared path = %q", sharer.path)
			}
		})
	}
}

func TestService_NoPrediction(t *testing.T) {
	conv := &fakeConverter{}
	svc, _ := newTestService(t, conv, &fakeSharer{})
	if res := svc.Download(context.Background(), Input{}); res.IsSuccess() {
		t.Fatal("expected failure without a prediction")
	}
	if conv.calls != 0 {
		t.Error("converter called without a prediction")
	}
}
