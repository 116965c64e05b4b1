// Package mupdf renders PDF pages with MuPDF through go-fitz.
package mupdf

import (
	"context"
	"fmt"

	"qrvalidator/pkg/rasterizer"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI maps one PDF point to one pixel, MuPDF's identity transform.
const DefaultDPI = 72

// Rasterizer renders pages at a fixed resolution.
type Rasterizer struct {
	dpi float64
}

// Ensure Rasterizer conforms to the rasterizer.Rasterizer interface at compile time.
var _ rasterizer.Rasterizer = (*Rasterizer)(nil)

// New returns a Rasterizer rendering at dpi; zero or negative means DefaultDPI.
func New(dpi float64) *Rasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	return &Rasterizer{dpi: dpi}
}

// Rasterize opens pdf, renders each page in order and passes it to fn. The
// document is closed before returning.
func (r *Rasterizer) Rasterize(ctx context.Context, pdf []byte, fn rasterizer.PageFunc) error {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return fmt.Errorf("could not open pdf: %w", err)
	}
	defer func() {
		_ = doc.Close()
	}()

	for page, n := 0, doc.NumPage(); page < n; page++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pdf rendering interrupted: %w", err)
		}

		img, err := doc.ImageDPI(page, r.dpi)
		if err != nil {
			return fmt.Errorf("could not render pdf page %d: %w", page+1, err)
		}
		if err := fn(page, img); err != nil {
			return err
		}
	}

	return nil
}
