package domain

// Region is the rectangle a QR code occupies within its source image, in
// pixels.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DecodedQRCode is one QR code found in a scanned image.
type DecodedQRCode struct {
	// Text is the decoded payload.
	Text string `json:"text"`
	// Region locates the code within the scanned image or page.
	Region Region `json:"region"`
	// ImageBase64 is the region cropped from the source, PNG encoded, base64.
	ImageBase64 string `json:"imageBase64"`
}
