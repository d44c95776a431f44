package service

// QRCodeService renders QR codes that link to blog pages.
type QRCodeService interface {
	// GeneratePostQR returns a PNG encoding the public URL of the post at path.
	GeneratePostQR(path string) ([]byte, error)
}
