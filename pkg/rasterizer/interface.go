// Package rasterizer defines how PDF documents are turned into raster images
// for QR scanning.
package rasterizer

import (
	"context"
	"image"
)

// PageFunc receives one rendered page. page is zero based. Returning an error
// stops rendering.
type PageFunc func(page int, img image.Image) error

// Rasterizer renders every page of a PDF document, in page order, and hands
// each one to fn. Implementations release any native document handle before
// returning, on success and on failure.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdf []byte, fn PageFunc) error
}

// Func adapts an ordinary function to the Rasterizer interface.
type Func func(ctx context.Context, pdf []byte, fn PageFunc) error

// Rasterize calls f(ctx, pdf, fn).
func (f Func) Rasterize(ctx context.Context, pdf []byte, fn PageFunc) error {
	return f(ctx, pdf, fn)
}

// Pages returns a Rasterizer that ignores its input and yields the given
// images as pages.
func Pages(pages ...image.Image) Rasterizer {
	return Func(func(ctx context.Context, _ []byte, fn PageFunc) error {
		for i, p := range pages {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i, p); err != nil {
				return err
			}
		}

		return nil
	})
}
