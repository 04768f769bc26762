package report

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Converter turns a rendered HTML document into a PDF file at dst.
type Converter interface {
	Convert(ctx context.Context, html []byte, dst string) error
}

// WkhtmltopdfConverter shells out to the wkhtmltopdf binary.
type WkhtmltopdfConverter struct {
	binPath string
}

var setPathOnce sync.Once

// NewWkhtmltopdfConverter uses binPath when set, otherwise wkhtmltopdf is
// looked up on PATH.
func NewWkhtmltopdfConverter(binPath string) *WkhtmltopdfConverter {
	if binPath != "" {
		setPathOnce.Do(func() { wkhtmltopdf.SetPath(binPath) })
	}
	return &WkhtmltopdfConverter{binPath: binPath}
}

func (c *WkhtmltopdfConverter) Convert(ctx context.Context, html []byte, dst string) error {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("wkhtmltopdf not available: %w", err)
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Dpi.Set(150)
	pdfg.Title.Set("Skin Analysis Report")

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := pdfg.WriteFile(dst); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
