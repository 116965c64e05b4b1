package qrcode_test

import (
	"encoding/base64"
	"image"
	"image/color"
	"math"
	"testing"

	"qrvalidator/pkg/imgcodec"
	"qrvalidator/pkg/qrcode"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func mustEncode(t *testing.T, text string) image.Image {
	t.Helper()

	img, err := qrcode.Encode(text)
	require.NoError(t, err)

	return img
}

func TestEncode_Geometry(t *testing.T) {
	img := mustEncode(t, "hello")

	// version 1 symbol: 21 modules plus a 4 module border on each side
	require.Equal(t, (21+2*qrcode.Border)*qrcode.BoxSize, img.Bounds().Dx())
	require.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())

	// quiet zone is white, top-left finder pattern is black
	r, g, b, _ := img.At(5, 5).RGBA()
	require.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
	r, g, b, _ = img.At(qrcode.Border*qrcode.BoxSize+1, qrcode.Border*qrcode.BoxSize+1).RGBA()
	require.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := qrcode.EncodeBase64("same input")
	require.NoError(t, err)
	b, err := qrcode.EncodeBase64("same input")
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := qrcode.EncodeBase64("other input")
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestDecode_SingleCode(t *testing.T) {
	img := mustEncode(t, "hello")

	codes, err := qrcode.NewDecoder().Decode(img)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	require.Equal(t, "hello", codes[0].Text)

	// the symbol spans the image minus the quiet zone
	quiet := float64(qrcode.Border * qrcode.BoxSize)
	side := float64(img.Bounds().Dx())
	reg := codes[0].Region
	require.InDelta(t, quiet, float64(reg.Left), qrcode.BoxSize)
	require.InDelta(t, quiet, float64(reg.Top), qrcode.BoxSize)
	require.InDelta(t, side-2*quiet, float64(reg.Width), 2*qrcode.BoxSize)
	require.InDelta(t, side-2*quiet, float64(reg.Height), 2*qrcode.BoxSize)

	raw, err := base64.StdEncoding.DecodeString(codes[0].ImageBase64)
	require.NoError(t, err)
	crop, err := imgcodec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, reg.Width, crop.Bounds().Dx())
	require.Equal(t, reg.Height, crop.Bounds().Dy())
}

func TestDecode_NoCode(t *testing.T) {
	blank := imaging.New(300, 200, color.White)

	codes, err := qrcode.NewDecoder().Decode(blank)
	require.NoError(t, err)
	require.NotNil(t, codes)
	require.Empty(t, codes)
}

// cropText decodes a crop returned by Decode, padded with a white quiet zone.
func cropText(t *testing.T, b64 string) string {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)
	crop, err := imgcodec.Decode(raw)
	require.NoError(t, err)

	pad := 4 * qrcode.BoxSize
	canvas := imaging.New(crop.Bounds().Dx()+2*pad, crop.Bounds().Dy()+2*pad, color.White)
	canvas = imaging.Paste(canvas, crop, image.Pt(pad, pad))

	codes, err := qrcode.NewDecoder().Decode(canvas)
	require.NoError(t, err)
	require.Len(t, codes, 1)

	return codes[0].Text
}

func TestDecode_MultipleCodes(t *testing.T) {
	first := mustEncode(t, "first code")
	second := mustEncode(t, "second code")

	w := first.Bounds().Dx() + second.Bounds().Dx() + 100
	h := max(first.Bounds().Dy(), second.Bounds().Dy()) + 100
	canvas := imaging.New(w, h, color.White)
	canvas = imaging.Paste(canvas, first, image.Pt(0, 50))
	canvas = imaging.Paste(canvas, second, image.Pt(first.Bounds().Dx()+100, 50))

	codes, err := qrcode.NewDecoder().Decode(canvas)
	require.NoError(t, err)
	require.Len(t, codes, 2)

	texts := []string{codes[0].Text, codes[1].Text}
	require.ElementsMatch(t, []string{"first code", "second code"}, texts)

	// each entry carries its own crop and region
	for _, c := range codes {
		require.Equal(t, c.Text, cropText(t, c.ImageBase64))
		if c.Text == "first code" {
			require.Less(t, c.Region.Left, first.Bounds().Dx())
		} else {
			require.GreaterOrEqual(t, c.Region.Left, first.Bounds().Dx()+100)
		}
	}

	// detector order is stable across runs
	again, err := qrcode.NewDecoder().Decode(canvas)
	require.NoError(t, err)
	require.Equal(t, codes, again)
}

func TestDecode_RotatedCodeRegion(t *testing.T) {
	src := mustEncode(t, "rotated payload")
	img := imaging.Rotate(src, 45, color.White)

	codes, err := qrcode.NewDecoder().Decode(img)
	require.NoError(t, err)
	require.Len(t, codes, 1)
	require.Equal(t, "rotated payload", codes[0].Text)

	// the symbol (quiet zone excluded) is centred; at 45 degrees its
	// bounding box is a square of side equal to its diagonal
	side := float64((src.Bounds().Dx() - 2*qrcode.Border*qrcode.BoxSize))
	half := side * math.Sqrt2 / 2
	cx, cy := float64(img.Bounds().Dx())/2, float64(img.Bounds().Dy())/2

	reg := codes[0].Region
	tol := float64(qrcode.BoxSize)
	require.LessOrEqual(t, float64(reg.Left), cx-half+tol)
	require.LessOrEqual(t, float64(reg.Top), cy-half+tol)
	require.GreaterOrEqual(t, float64(reg.Left+reg.Width), cx+half-tol)
	require.GreaterOrEqual(t, float64(reg.Top+reg.Height), cy+half-tol)
	require.LessOrEqual(t, reg.Left+reg.Width, img.Bounds().Dx())
	require.LessOrEqual(t, reg.Top+reg.Height, img.Bounds().Dy())

	require.Equal(t, "rotated payload", cropText(t, codes[0].ImageBase64))
}

func TestRoundTrip(t *testing.T) {
	payloads := []string{
		"hello",
		"12345678900",
		"HTTPS://EXAMPLE.COM/CNH?ID=42",
		"CNH|01234567890|JOAO DA SILVA|1990-01-01|AB",
	}

	for _, want := range payloads {
		t.Run(want, func(t *testing.T) {
			enc, err := qrcode.EncodeBase64(want)
			require.NoError(t, err)

			raw, err := base64.StdEncoding.DecodeString(enc)
			require.NoError(t, err)
			img, err := imgcodec.Decode(raw)
			require.NoError(t, err)

			codes, err := qrcode.NewDecoder().Decode(img)
			require.NoError(t, err)
			require.Len(t, codes, 1)
			require.Equal(t, want, codes[0].Text)
		})
	}
}
