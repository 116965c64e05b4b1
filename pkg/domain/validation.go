package domain

// ValidationRequest is the JSON body posted to the identity validator. It is
// built per request and never persisted.
type ValidationRequest struct {
	CPF       string     `json:"cpf"`
	Validacao Validation `json:"validacao"`
}

// Validation groups the evidences submitted for a CPF.
type Validation struct {
	QRCode          QRCodeEvidence `json:"qrcode"`
	BiometriaFacial FaceEvidence   `json:"biometria_facial"`
}

// QRCodeEvidence carries the cropped QR code image.
type QRCodeEvidence struct {
	Formato QRCodeFormat `json:"formato"`
	Base64  string       `json:"base64"`
}

// FaceEvidence carries the facial photo used for biometry.
type FaceEvidence struct {
	// Vivacidade is the liveness flag, always asserted.
	Vivacidade bool        `json:"vivacidade"`
	Formato    PhotoFormat `json:"formato"`
	Base64     string      `json:"base64"`
}

// NewValidationRequest assembles a validation payload.
func NewValidationRequest(cpf string,
	qrFormat QRCodeFormat, qrBase64 string,
	photoFormat PhotoFormat, photoBase64 string) ValidationRequest {
	return ValidationRequest{
		CPF: cpf,
		Validacao: Validation{
			QRCode: QRCodeEvidence{
				Formato: qrFormat,
				Base64:  qrBase64,
			},
			BiometriaFacial: FaceEvidence{
				Vivacidade: true,
				Formato:    photoFormat,
				Base64:     photoBase64,
			},
		},
	}
}
