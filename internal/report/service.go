package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dermassist/pkg/result"

	"github.com/sirupsen/logrus"
)

// Service generates skin analysis reports and delivers them to the user.
type Service struct {
	converter Converter
	placer    Placer
	sharer    Sharer
	tempDir   string
	log       *logrus.Logger
	now       func() time.Time
}

func NewService(converter Converter, placer Placer, sharer Sharer, tempDir string, log *logrus.Logger) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Service{
		converter: converter,
		placer:    placer,
		sharer:    sharer,
		tempDir:   tempDir,
		log:       log,
		now:       time.Now,
	}
}

// Download generates the report and moves it into the platform download
// directory, replacing a file of the same name. The result carries the final
// path.
func (s *Service) Download(ctx context.Context, in Input) result.Result[string] {
	now := s.now()
	tmp, err := s.generate(ctx, in, now)
	if err != nil {
		return result.Fail[string](err)
	}
	defer os.RemoveAll(filepath.Dir(tmp))

	dst := s.placer.Path(in.Prediction.Result.PredictedLabel, now)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		s.log.Warnf("Failed to create download directory: %+v", err)
		return result.Fail[string](fmt.Errorf("Failed to save report: %w", err))
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warnf("Failed to remove existing report %s: %+v", dst, err)
		return result.Fail[string](fmt.Errorf("Failed to save report: %w", err))
	}
	if err := copyFile(tmp, dst); err != nil {
		s.log.Warnf("Failed to copy report to %s: %+v", dst, err)
		return result.Fail[string](fmt.Errorf("Failed to save report: %w", err))
	}

	s.log.Infof("Report saved to %s", dst)
	return result.Ok(dst)
}

// Share generates the report and opens the share facility with it. A
// cancelled share still counts as success.
func (s *Service) Share(ctx context.Context, in Input) result.Result[string] {
	tmp, err := s.generate(ctx, in, s.now())
	if err != nil {
		return result.Fail[string](err)
	}

	if err := s.sharer.Share(ctx, tmp, ShareTitle, ShareMessage); err != nil {
		if errors.Is(err, ErrShareCancelled) {
			s.log.Info("Report share cancelled")
			return result.Ok(tmp)
		}
		s.log.Warnf("Failed to share report: %+v", err)
		return result.Fail[string](fmt.Errorf("Failed to share report: %w", err))
	}
	return result.Ok(tmp)
}

// generate renders and converts the report into a fresh directory under the
// private temp directory, so the generated file never collides with the
// download destination.
func (s *Service) generate(ctx context.Context, in Input, now time.Time) (string, error) {
	if in.Prediction == nil {
		return "", errors.New("A prediction is required to generate a report.")
	}

	html, err := Render(BuildData(in, now))
	if err != nil {
		s.log.Warnf("Failed to render report: %+v", err)
		return "", fmt.Errorf("Failed to generate report: %w", err)
	}

	if err := os.MkdirAll(s.tempDir, 0o700); err != nil {
		return "", fmt.Errorf("Failed to generate report: %w", err)
	}
	dir, err := os.MkdirTemp(s.tempDir, "report-*")
	if err != nil {
		return "", fmt.Errorf("Failed to generate report: %w", err)
	}
	tmp := filepath.Join(dir, FileName(in.Prediction.Result.PredictedLabel, now))
	if err := s.converter.Convert(ctx, html, tmp); err != nil {
		os.RemoveAll(dir)
		s.log.Warnf("Failed to convert report to PDF: %+v", err)
		return "", fmt.Errorf("Failed to generate report: %w", err)
	}
	return tmp, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
