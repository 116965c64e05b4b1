// Package imgcodec converts between raw upload bytes, decoded images and the
// base64 text embedded in JSON payloads.
package imgcodec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Base64 encodes b with the standard, padded base64 alphabet.
func Base64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Decode decodes a raster image (PNG or JPEG) held in memory.
func Decode(b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	return img, nil
}

// EncodePNG renders img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("could not encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// PNGBase64 renders img as PNG and returns it base64 encoded.
func PNGBase64(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}

	return Base64(b), nil
}
