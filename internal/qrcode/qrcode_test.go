package qrcode_test

import (
	"bytes"
	"testing"

	"mafia/internal/qrcode"
)

func TestJoinURL(t *testing.T) {
	got := qrcode.JoinURL("example.com:8080", "abc")
	want := "http://example.com:8080/?game=abc&type=player"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGeneratePNG(t *testing.T) {
	png, err := qrcode.Generate(qrcode.JoinURL("localhost", "abc"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected a PNG image")
	}
}
