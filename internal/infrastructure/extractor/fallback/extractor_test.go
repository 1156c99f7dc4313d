package fallback

import (
	"context"
	"testing"

	"github.com/inflective/voice-reader/internal/core/domain"
)

func TestExtractKeepsReadableText(t *testing.T) {
	got, err := New().Extract(context.Background(), []byte("plain text in a .conf file"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "plain text in a .conf file" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractBinaryPayloadYieldsPlaceholder(t *testing.T) {
	got, err := New().Extract(context.Background(), []byte{0xff, 0xfe, 0x80, 0x81, 0x00, 0x01})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != domain.PlaceholderUnparsedFile {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestExtractEmptyPayloadYieldsPlaceholder(t *testing.T) {
	got, err := New().Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != domain.PlaceholderUnparsedFile {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestExtractMixedPayloadDropsNoise(t *testing.T) {
	got, err := New().Extract(context.Background(), []byte{'h', 'i', 0xff, ' ', 't', 'h', 'e', 'r', 'e'})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "hi there" {
		t.Fatalf("got %q", got)
	}
}
