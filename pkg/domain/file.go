package domain

import (
	"mime"
	"strings"

	"qrvalidator/pkg/serrors"
)

// MediaType is the declared content type of an uploaded QR-bearing file.
type MediaType string

const (
	// MediaTypePNG is a PNG raster image.
	MediaTypePNG MediaType = "image/png"
	// MediaTypeJPEG is a JPEG raster image.
	MediaTypeJPEG MediaType = "image/jpeg"
	// MediaTypePDF is a PDF document; every page is rendered and scanned.
	MediaTypePDF MediaType = "application/pdf"
)

// ParseMediaType maps a Content-Type header value to one of the accepted
// media types. Parameters such as charset are ignored. Anything outside the
// closed set is a bad request.
func ParseMediaType(contentType string) (MediaType, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.TrimSpace(contentType)
	}

	switch MediaType(strings.ToLower(mt)) {
	case MediaTypePNG:
		return MediaTypePNG, nil
	case MediaTypeJPEG:
		return MediaTypeJPEG, nil
	case MediaTypePDF:
		return MediaTypePDF, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unsupported file format %q, use PNG, JPEG or PDF", contentType)
	}
}

// IsImage reports whether the media type is a raster image.
func (m MediaType) IsImage() bool {
	return m == MediaTypePNG || m == MediaTypeJPEG
}

// PhotoFormat is the format tag of the facial photo sent for biometry.
type PhotoFormat string

const (
	PhotoFormatJPG PhotoFormat = "JPG"
	PhotoFormatPNG PhotoFormat = "PNG"
)

// PhotoFormatFromFilename derives the photo format from the file extension.
// Only jpg, jpeg and png are accepted.
func PhotoFormatFromFilename(name string) (PhotoFormat, error) {
	switch Extension(name) {
	case "jpg", "jpeg":
		return PhotoFormatJPG, nil
	case "png":
		return PhotoFormatPNG, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unsupported personal photo format %q, use JPG or PNG", Extension(name))
	}
}

// QRCodeFormat is the format tag of the QR image sent for validation.
type QRCodeFormat string

const (
	QRCodeFormatPNG  QRCodeFormat = "PNG"
	QRCodeFormatJPEG QRCodeFormat = "JPEG"
)

// QRCodeFormatFromFilename returns PNG for png, jpg and jpeg sources and JPEG
// for anything else, PDFs included.
func QRCodeFormatFromFilename(name string) QRCodeFormat {
	switch Extension(name) {
	case "png", "jpg", "jpeg":
		return QRCodeFormatPNG
	default:
		return QRCodeFormatJPEG
	}
}

// Extension returns the lower-cased text after the last dot of name, or the
// whole lower-cased name when it has no dot.
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return strings.ToLower(name)
}

// UploadedFile is a file received in a request. It is written to storage once
// and never mutated afterwards.
type UploadedFile struct {
	// Filename is the client supplied file name.
	Filename string
	// MediaType is the declared content type. It is empty for the personal
	// photo, whose format comes from the file extension.
	MediaType MediaType
	// Data holds the raw file bytes.
	Data []byte
}
