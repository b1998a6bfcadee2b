package qrcode

import (
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// Size is the edge length of generated images in pixels.
const Size = 256

// JoinURL is the link a phone follows to take a seat in game gameID.
func JoinURL(host, gameID string) string {
	u := url.URL{
		Scheme:   "http",
		Host:     host,
		Path:     "/",
		RawQuery: url.Values{"game": {gameID}, "type": {"player"}}.Encode(),
	}
	return u.String()
}

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, Size)
}
