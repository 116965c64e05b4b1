// Package qrcheck extracts QR codes from uploaded driver's license files and
// submits them, together with a facial photo, for identity validation.
package qrcheck

import (
	"context"
	"encoding/json"

	"qrvalidator/pkg/domain"
)

// SubmitRequest is a validation request whose inputs already passed the
// boundary checks: the file has a supported media type and the photo format
// is known.
type SubmitRequest struct {
	File        domain.UploadedFile
	Photo       domain.UploadedFile
	PhotoFormat domain.PhotoFormat
	CPF         string
}

// Detection is the outcome of scanning a file. Regenerated is index aligned
// with Codes.
type Detection struct {
	Codes       []domain.DecodedQRCode
	Regenerated []string
	FilePath    string
	FileBase64  string
}

//go:generate mockgen -package mockqrcheck -source=interface.go -destination=mock/mockqrcheck.go *
type Service interface {
	// Extract returns every QR code in data, page by page for PDFs.
	Extract(ctx context.Context, mediaType domain.MediaType, data []byte) ([]domain.DecodedQRCode, error)
	// SubmitForValidation stores both files, validates the first QR code
	// found against the CPF and the photo, and returns the validator's body.
	SubmitForValidation(ctx context.Context, req SubmitRequest) (json.RawMessage, error)
	// DetectQRCode stores the file and reports the QR codes it contains.
	// A file without codes is not an error.
	DetectQRCode(ctx context.Context, file domain.UploadedFile) (*Detection, error)
}
