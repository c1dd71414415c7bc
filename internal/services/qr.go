package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"xui-panel-client/internal/constants"
)

// QROptions controls the rendering of subscription QR codes
type QROptions struct {
	Size  int    // image width and height in pixels
	Level string // error recovery: low, medium, high or highest
}

// QRService renders subscription links as PNG QR codes
type QRService struct {
	logger logrus.FieldLogger
}

// NewQRService creates a new QR code service
func NewQRService(logger logrus.FieldLogger) *QRService {
	return &QRService{
		logger: logger,
	}
}

// GenerateQR renders text as a PNG QR code. Zero options fall back to the
// default size and medium recovery.
func (s *QRService) GenerateQR(text string, opts QROptions) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("nothing to encode")
	}

	size := opts.Size
	if size == 0 {
		size = constants.QRCodeSize
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid QR code size %d", size)
	}

	level, err := ParseRecoveryLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	s.logger.Debugf("Generating %dpx QR code for %s", size, text)

	png, err := qrcode.Encode(text, level, size)
	if err != nil {
		s.logger.Errorf("Failed to generate QR code: %v", err)
		return nil, err
	}
	return png, nil
}

// ParseRecoveryLevel maps a level name to its go-qrcode value
func ParseRecoveryLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return qrcode.Low, nil
	case "", "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	}
	return 0, fmt.Errorf("unknown QR recovery level %q", name)
}
