package qrcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"qrvalidator/pkg/domain"
	"qrvalidator/pkg/imgcodec"
	"qrvalidator/pkg/logger"
	"qrvalidator/pkg/metrics"
	"qrvalidator/pkg/qrcode"
	"qrvalidator/pkg/rasterizer"
	"qrvalidator/pkg/serrors"
	"qrvalidator/pkg/storage"
	"qrvalidator/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure how saved files are named.
type Options struct {
	// FilePrefix names saved QR-bearing files.
	FilePrefix string
	// PhotoPrefix names saved personal photos; the CPF follows it.
	PhotoPrefix string
}

// DefaultOptions names files cnh_<id>.<ext> and foto_<cpf><id>.<ext>.
func DefaultOptions() Options {
	return Options{
		FilePrefix:  "cnh_",
		PhotoPrefix: "foto_",
	}
}

// Deps are the collaborators of the service.
type Deps struct {
	Storage    storage.Storage
	Validator  validator.Client
	Rasterizer rasterizer.Rasterizer
	Decoder    *qrcode.Decoder
	Metrics    *metrics.Recorder
	// NewID generates the unique part of file names; uuid.NewString by default.
	NewID func() string
}

type service struct {
	options Options
	deps    Deps
}

// Extract decodes images directly and rasterizes PDFs, concatenating codes in
// page order.
func (s *service) Extract(ctx context.Context,
	mediaType domain.MediaType,
	data []byte) ([]domain.DecodedQRCode, error) {
	var codes []domain.DecodedQRCode

	switch {
	case mediaType.IsImage():
		img, err := imgcodec.Decode(data)
		if err != nil {
			return nil, err
		}
		codes, err = s.deps.Decoder.Decode(img)
		if err != nil {
			return nil, fmt.Errorf("could not decode qr codes: %w", err)
		}

	case mediaType == domain.MediaTypePDF:
		codes = []domain.DecodedQRCode{}
		err := s.deps.Rasterizer.Rasterize(ctx, data, func(page int, img image.Image) error {
			found, err := s.deps.Decoder.Decode(img)
			if err != nil {
				return fmt.Errorf("could not decode qr codes on page %d: %w", page+1, err)
			}
			logger.Debug(ctx, "scanned pdf page", zap.Int("page", page+1), zap.Int("codes", len(found)))
			codes = append(codes, found...)

			return nil
		})
		if err != nil {
			return nil, err
		}

	default:
		return nil, serrors.With(serrors.ErrBadRequest, "unsupported file type %q", mediaType)
	}

	s.deps.Metrics.CodesDecoded(ctx, string(mediaType), len(codes))

	return codes, nil
}

// save writes data under name and reads it back, so what gets scanned is
// exactly what was persisted.
func (s *service) save(ctx context.Context, name string, data []byte) (string, []byte, error) {
	path, err := s.deps.Storage.Save(ctx, name, data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return "", nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid file name")
		}

		return "", nil, fmt.Errorf("could not save file: %w", err)
	}

	stored, err := s.deps.Storage.Read(ctx, path)
	if err != nil {
		return "", nil, fmt.Errorf("could not read saved file: %w", err)
	}

	return path, stored, nil
}

func (s *service) fileName(id string, file domain.UploadedFile) string {
	return fmt.Sprintf("%s%s.%s", s.options.FilePrefix, id, domain.Extension(file.Filename))
}

// SubmitForValidation saves both files under one id, picks the first QR code
// and hands it to the validator. Remote rejections are returned unchanged as
// *validator.RemoteError.
func (s *service) SubmitForValidation(ctx context.Context, req SubmitRequest) (json.RawMessage, error) {
	id := s.deps.NewID()
	ctx = logger.WithFields(ctx, zap.String("upload_id", id))

	filePath, file, err := s.save(ctx, s.fileName(id, req.File), req.File.Data)
	if err != nil {
		return nil, err
	}

	photoName := fmt.Sprintf("%s%s%s.%s", s.options.PhotoPrefix, req.CPF, id, domain.Extension(req.Photo.Filename))
	photoPath, photo, err := s.save(ctx, photoName, req.Photo.Data)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "files saved", zap.String("file_path", filePath), zap.String("photo_path", photoPath))

	codes, err := s.Extract(ctx, req.File.MediaType, file)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "no QR code found in the file")
	}
	if len(codes) > 1 {
		logger.Info(ctx, "several qr codes found, validating the first one", zap.Int("codes", len(codes)))
	}

	payload := domain.NewValidationRequest(req.CPF,
		domain.QRCodeFormatFromFilename(req.File.Filename), codes[0].ImageBase64,
		req.PhotoFormat, imgcodec.Base64(photo))

	// the remote call runs to completion even if the client goes away
	start := time.Now()
	res, err := s.deps.Validator.Validate(context.WithoutCancel(ctx), payload)
	took := time.Since(start)
	if err != nil {
		var remote *validator.RemoteError
		if errors.As(err, &remote) {
			s.deps.Metrics.Validation(ctx, metrics.OutcomeRejected, took)
			logger.Warn(ctx, "validator rejected request", zap.Int("status_code", remote.StatusCode))

			return nil, err
		}
		s.deps.Metrics.Validation(ctx, metrics.OutcomeFailed, took)

		return nil, fmt.Errorf("could not validate qr code: %w", err)
	}
	s.deps.Metrics.Validation(ctx, metrics.OutcomeAccepted, took)

	return res, nil
}

// DetectQRCode saves the file, scans it and renders a fresh QR code for every
// decoded text.
func (s *service) DetectQRCode(ctx context.Context, file domain.UploadedFile) (*Detection, error) {
	id := s.deps.NewID()
	ctx = logger.WithFields(ctx, zap.String("upload_id", id))

	path, data, err := s.save(ctx, s.fileName(id, file), file.Data)
	if err != nil {
		return nil, err
	}

	codes, err := s.Extract(ctx, file.MediaType, data)
	if err != nil {
		return nil, err
	}

	regenerated := make([]string, 0, len(codes))
	for _, c := range codes {
		b64, err := qrcode.EncodeBase64(c.Text)
		if err != nil {
			return nil, fmt.Errorf("could not regenerate qr code: %w", err)
		}
		regenerated = append(regenerated, b64)
	}

	return &Detection{
		Codes:       codes,
		Regenerated: regenerated,
		FilePath:    path,
		FileBase64:  imgcodec.Base64(data),
	}, nil
}

// New creates a Service with the provided dependencies and options. Missing
// optional dependencies get defaults.
func New(deps Deps, options Options) Service {
	if deps.Decoder == nil {
		deps.Decoder = qrcode.NewDecoder()
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &service{
		options: options,
		deps:    deps,
	}
}
