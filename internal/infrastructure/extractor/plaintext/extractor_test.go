package plaintext

import (
	"context"
	"strings"
	"testing"
)

func TestExtractRoundTripsValidUTF8(t *testing.T) {
	inputs := []string{
		"hello",
		"  leading and trailing  ",
		"multi\nline\ntext",
		"unicode: åßç 日本語",
		"",
	}
	for _, in := range inputs {
		got, err := New().Extract(context.Background(), []byte(in))
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if got != in {
			t.Fatalf("round trip broken: got %q, want %q", got, in)
		}
	}
}

func TestExtractReplacesInvalidBytes(t *testing.T) {
	got, err := New().Extract(context.Background(), []byte{'o', 'k', 0xff, 0xfe, '!'})
	if err != nil {
		t.Fatalf("extract must not fail on invalid bytes: %v", err)
	}
	if !strings.HasPrefix(got, "ok") || !strings.HasSuffix(got, "!") {
		t.Fatalf("valid bytes must survive, got %q", got)
	}
	if !strings.Contains(got, "�") {
		t.Fatalf("invalid bytes should be replaced, got %q", got)
	}
}

func TestExtractIsTotalOnArbitraryBytes(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x00},
		{0xff, 0xff, 0xff},
		{0xc3}, // truncated multi-byte sequence
	}
	for _, p := range payloads {
		if _, err := New().Extract(context.Background(), p); err != nil {
			t.Fatalf("payload %v: unexpected error %v", p, err)
		}
	}
}
