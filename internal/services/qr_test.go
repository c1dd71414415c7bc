package services

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/skip2/go-qrcode"
)

func TestQRService_GenerateQR(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := NewQRService(logger)
	link := "http://sub.example.com:2096/sub/abc"

	tests := []struct {
		name  string
		opts  QROptions
		width int
	}{
		{name: "defaults", opts: QROptions{}, width: 256},
		{name: "custom size", opts: QROptions{Size: 512, Level: "high"}, width: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.GenerateQR(link, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output is not a PNG image: %v", err)
			}
			if cfg.Width != tt.width || cfg.Height != tt.width {
				t.Fatalf("size=%dx%d, want=%d", cfg.Width, cfg.Height, tt.width)
			}
		})
	}
}

func TestQRService_GenerateQRErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := NewQRService(logger)

	if _, err := svc.GenerateQR("", QROptions{}); err == nil {
		t.Fatalf("expected an error for empty text")
	}
	if _, err := svc.GenerateQR("x", QROptions{Size: -4}); err == nil {
		t.Fatalf("expected an error for a negative size")
	}
	if _, err := svc.GenerateQR("x", QROptions{Level: "extreme"}); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestParseRecoveryLevel(t *testing.T) {
	for name, want := range map[string]qrcode.RecoveryLevel{
		"":        qrcode.Medium,
		"low":     qrcode.Low,
		"HIGH":    qrcode.High,
		"highest": qrcode.Highest,
	} {
		got, err := ParseRecoveryLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseRecoveryLevel(%q)=%v,%v want=%v", name, got, err, want)
		}
	}
}
