// Package qrcode locates, decodes and renders QR codes.
package qrcode

import (
	"errors"
	"fmt"
	"image"
	"math"

	"qrvalidator/pkg/domain"
	"qrvalidator/pkg/imgcodec"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
)

// finderHalfWidth is the distance, in modules, from a finder pattern centre
// to the outer edge of the symbol.
const finderHalfWidth = 3.5

type multiReader interface {
	DecodeMultiple(image *gozxing.BinaryBitmap,
		hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error)
}

// Decoder finds every QR code in a raster image. The zero value is ready to
// use and safe for concurrent use.
type Decoder struct{}

// NewDecoder returns a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode returns the QR codes found in img in detector order. An image
// without codes yields an empty slice and no error.
func (d *Decoder) Decode(img image.Image) ([]domain.DecodedQRCode, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("could not binarize image: %w", err)
	}

	var reader multiReader = multiqr.NewQRCodeMultiReader()
	results, err := reader.DecodeMultiple(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		var re gozxing.ReaderException
		if errors.As(err, &re) {
			return []domain.DecodedQRCode{}, nil
		}

		return nil, fmt.Errorf("could not decode qr codes: %w", err)
	}

	codes := make([]domain.DecodedQRCode, 0, len(results))
	for _, res := range results {
		region := regionOf(res.GetResultPoints(), img.Bounds())

		crop := imaging.Crop(img, image.Rect(
			img.Bounds().Min.X+region.Left,
			img.Bounds().Min.Y+region.Top,
			img.Bounds().Min.X+region.Left+region.Width,
			img.Bounds().Min.Y+region.Top+region.Height,
		))
		cropB64, err := imgcodec.PNGBase64(crop)
		if err != nil {
			return nil, fmt.Errorf("could not encode qr code crop: %w", err)
		}

		codes = append(codes, domain.DecodedQRCode{
			Text:        res.GetText(),
			Region:      region,
			ImageBase64: cropB64,
		})
	}

	return codes, nil
}

// regionOf derives the symbol rectangle from the detector's result points:
// bottom-left, top-left and top-right finder pattern centres, optionally
// followed by an alignment pattern. The centres are pushed out by half a
// finder pattern along the symbol's own axes and the fourth corner is
// completed, so rotated symbols are covered too. Coordinates are relative to
// bounds.Min.
func regionOf(points []gozxing.ResultPoint, bounds image.Rectangle) domain.Region {
	if len(points) == 0 {
		return domain.Region{Width: bounds.Dx(), Height: bounds.Dy()}
	}

	moduleSize := 0.0
	for _, p := range points {
		if fp, ok := p.(interface{ GetEstimatedModuleSize() float64 }); ok {
			moduleSize = math.Max(moduleSize, fp.GetEstimatedModuleSize())
		}
	}

	var corners [][2]float64
	if len(points) >= 3 {
		bl := [2]float64{points[0].GetX(), points[0].GetY()}
		tl := [2]float64{points[1].GetX(), points[1].GetY()}
		tr := [2]float64{points[2].GetX(), points[2].GetY()}

		ex, rowLen := unit(tl, tr)
		ey, colLen := unit(tl, bl)
		if moduleSize == 0 {
			// no module size reported: assume the smallest symbol (21 modules,
			// 14 between finder centres), which never under-crops.
			moduleSize = math.Max(rowLen, colLen) / 14
		}
		m := moduleSize * finderHalfWidth
		at := func(p [2]float64, sx, sy float64) [2]float64 {
			return [2]float64{p[0] + m*(sx*ex[0]+sy*ey[0]), p[1] + m*(sx*ex[1]+sy*ey[1])}
		}
		br := [2]float64{bl[0] + tr[0] - tl[0], bl[1] + tr[1] - tl[1]}

		corners = [][2]float64{at(tl, -1, -1), at(tr, 1, -1), at(bl, -1, 1), at(br, 1, 1)}
	} else {
		m := moduleSize * finderHalfWidth
		for _, p := range points {
			corners = append(corners, [2]float64{p.GetX() - m, p.GetY() - m}, [2]float64{p.GetX() + m, p.GetY() + m})
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX, maxX = math.Min(minX, c[0]), math.Max(maxX, c[0])
		minY, maxY = math.Min(minY, c[1]), math.Max(maxY, c[1])
	}

	left := clamp(int(math.Floor(minX)), 0, bounds.Dx())
	top := clamp(int(math.Floor(minY)), 0, bounds.Dy())
	right := clamp(int(math.Ceil(maxX)), 0, bounds.Dx())
	bottom := clamp(int(math.Ceil(maxY)), 0, bounds.Dy())

	return domain.Region{
		Left:   left,
		Top:    top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// unit returns the unit vector from a to b and the distance between them.
func unit(a, b [2]float64) ([2]float64, float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	d := math.Hypot(dx, dy)
	if d == 0 {
		return [2]float64{}, 0
	}

	return [2]float64{dx / d, dy / d}, d
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
