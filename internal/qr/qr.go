// Package qr renders ticket verification links as QR code images.
package qr

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// PNG encodes content as a QR code PNG of size x size pixels.
func PNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}

// DataURL encodes content as a base64 PNG data URL, suitable for embedding
// in HTML emails and for storing on the ticket record.
func DataURL(content string, size int) (string, error) {
	png, err := PNG(content, size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
