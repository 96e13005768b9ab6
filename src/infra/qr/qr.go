package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const imageSize = 256

// PlaylistPNG renders a playlist URL as a QR code PNG.
func PlaylistPNG(playlistURL string) ([]byte, error) {
	png, err := qrcode.Encode(playlistURL, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
