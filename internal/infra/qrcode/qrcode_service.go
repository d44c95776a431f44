package qrcode

import (
	"strings"

	"blog/config"
	"blog/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:5000"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level, baseURL := defaultSize, "M", defaultBaseURL
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.ErrorCorrectionLevel != "" {
			level = cfg.QRCode.ErrorCorrectionLevel
		}
		if cfg.QRCode.BaseURL != "" {
			baseURL = cfg.QRCode.BaseURL
		}
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

func recoveryLevel(errorCorrectionLevel string) qrcode.RecoveryLevel {
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GeneratePostQR encodes baseURL+path as a PNG.
func (s *qrcodeService) GeneratePostQR(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty path for QR code")
	}

	qrCode, err := qrcode.New(s.urlFor(path), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

func (s *qrcodeService) urlFor(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}
