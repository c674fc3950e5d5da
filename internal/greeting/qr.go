package greeting

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// SaveTheDateQR renders text as a QR code made of half-block
// characters, small enough for a terminal.
func SaveTheDateQR(text string) (string, error) {
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode save-the-date: %w", err)
	}
	return code.ToSmallString(false), nil
}
