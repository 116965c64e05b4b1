package qrcode

import (
	"fmt"
	"image"
	"image/color"

	"qrvalidator/pkg/imgcodec"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
)

const (
	// BoxSize is the rendered size of one module, in pixels.
	BoxSize = 10
	// Border is the quiet zone around the symbol, in modules.
	Border = 4
)

// Encode renders text as a QR code with low (L) error correction, the
// smallest version that fits, BoxSize pixels per module and a Border module
// white quiet zone. Output is deterministic for a given text.
func Encode(text string) (image.Image, error) {
	code, err := qr.Encode(text, qr.L, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("could not encode qr code: %w", err)
	}

	modules := code.Bounds().Dx()
	scaled, err := barcode.Scale(code, modules*BoxSize, modules*BoxSize)
	if err != nil {
		return nil, fmt.Errorf("could not scale qr code: %w", err)
	}

	side := (modules + 2*Border) * BoxSize
	canvas := imaging.New(side, side, color.White)

	return imaging.Paste(canvas, scaled, image.Pt(Border*BoxSize, Border*BoxSize)), nil
}

// EncodeBase64 renders text with Encode and returns the PNG, base64 encoded.
func EncodeBase64(text string) (string, error) {
	img, err := Encode(text)
	if err != nil {
		return "", err
	}

	return imgcodec.PNGBase64(img)
}
