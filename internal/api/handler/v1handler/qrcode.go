package v1handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"qrvalidator/internal/qrcheck"
	"qrvalidator/pkg/domain"
	"qrvalidator/pkg/serrors"
)

// multipartMemory is how much of a form is held in memory before spilling
// file parts to disk.
const multipartMemory = 8 << 20

// DetectResponse is returned when at least one QR code was found. The three
// lists are index aligned.
type DetectResponse struct {
	QRCodeData         []string `json:"qrcode_data"`
	QRCodeBase64       []string `json:"qrcode_base64"`
	QRCodeImagesBase64 []string `json:"qrcode_images_base64"`
	FilePath           string   `json:"file_path"`
	FileBase64         string   `json:"file_base64"`
}

// NoQRCodeResponse is returned when the file holds no QR code.
type NoQRCodeResponse struct {
	Message    string `json:"message"`
	FilePath   string `json:"file_path"`
	FileBase64 string `json:"file_base64"`
}

func (h Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serrors.With(serrors.ErrBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid multipart form")
	}

	return nil
}

func readPart(r *http.Request, field string) (*multipart.FileHeader, []byte, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		return nil, nil, serrors.With(serrors.ErrBadRequest, "missing %q file", field)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read %q: %w", field, err)
	}

	return fh, data, nil
}

// qrFile reads the "file" part and checks its declared media type.
func qrFile(r *http.Request) (domain.UploadedFile, error) {
	fh, data, err := readPart(r, "file")
	if err != nil {
		return domain.UploadedFile{}, err
	}
	mediaType, err := domain.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return domain.UploadedFile{}, err
	}

	return domain.UploadedFile{Filename: fh.Filename, MediaType: mediaType, Data: data}, nil
}

// SubmitForValidation handles POST /serpro-cnh-qr/. All inputs are checked
// before anything is written to storage.
func (h Handler) SubmitForValidation(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		WriteError(w, r, err)

		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, err := qrFile(r)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	fh, photoData, err := readPart(r, "foto_pessoal")
	if err != nil {
		WriteError(w, r, err)

		return
	}
	photoFormat, err := domain.PhotoFormatFromFilename(fh.Filename)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	cpf := strings.TrimSpace(r.FormValue("cpf"))
	if cpf == "" {
		WriteError(w, r, serrors.With(serrors.ErrBadRequest, "missing cpf"))

		return
	}

	res, err := h.deps.QRCheck.SubmitForValidation(r.Context(), qrcheck.SubmitRequest{
		File:        file,
		Photo:       domain.UploadedFile{Filename: fh.Filename, Data: photoData},
		PhotoFormat: photoFormat,
		CPF:         cpf,
	})
	if err != nil {
		WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res)
}

// DetectQRCode handles POST /detect-qrcode/.
func (h Handler) DetectQRCode(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		WriteError(w, r, err)

		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, err := qrFile(r)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	det, err := h.deps.QRCheck.DetectQRCode(r.Context(), file)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	if len(det.Codes) == 0 {
		writeJSON(r.Context(), w, http.StatusOK, NoQRCodeResponse{
			Message:    "No QR code found in the file.",
			FilePath:   det.FilePath,
			FileBase64: det.FileBase64,
		})

		return
	}

	res := DetectResponse{
		QRCodeData:         make([]string, 0, len(det.Codes)),
		QRCodeBase64:       det.Regenerated,
		QRCodeImagesBase64: make([]string, 0, len(det.Codes)),
		FilePath:           det.FilePath,
		FileBase64:         det.FileBase64,
	}
	for _, c := range det.Codes {
		res.QRCodeData = append(res.QRCodeData, c.Text)
		res.QRCodeImagesBase64 = append(res.QRCodeImagesBase64, c.ImageBase64)
	}
	writeJSON(r.Context(), w, http.StatusOK, res)
}
