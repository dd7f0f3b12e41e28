package extract

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTextFromBytes_ImageReturnsEmpty(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("\x89PNG\r\n\x1a\n"), "image/png", "shot.png")
	if err != nil {
		t.Fatalf("expected images to be tolerated, got error: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text for image, got %q", text)
	}
}

func TestExtractTextFromBytes_UnknownMimeRejected(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("hello"), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeMimeTypeFallsBackToExtension(t *testing.T) {
	if got := normalizeMimeType("application/octet-stream", "case-study.pdf"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", got)
	}
	if got := normalizeMimeType("", "hero.webp"); got != "image/webp" {
		t.Fatalf("expected image/webp, got %s", got)
	}
	if got := normalizeMimeType("Image/JPEG; charset=binary", "x"); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %s", got)
	}
}
