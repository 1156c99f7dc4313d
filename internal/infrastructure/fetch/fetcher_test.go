package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testFetcher() *Fetcher {
	return NewFetcher(2*time.Second, 1<<20)
}

func staticResolver(addrs ...string) func(context.Context, string) ([]net.IP, error) {
	return func(context.Context, string) ([]net.IP, error) {
		var ips []net.IP
		for _, a := range addrs {
			ips = append(ips, net.ParseIP(a))
		}
		return ips, nil
	}
}

func TestValidateRejectsNonHTTPSchemes(t *testing.T) {
	f := testFetcher()
	resolved := false
	f.resolve = func(context.Context, string) ([]net.IP, error) {
		resolved = true
		return nil, nil
	}

	for _, raw := range []string{"ftp://example.com/a", "file:///etc/passwd", "gopher://x"} {
		_, err := f.Validate(context.Background(), raw)
		if !errors.Is(err, ErrInvalidScheme) {
			t.Fatalf("%s: expected ErrInvalidScheme, got %v", raw, err)
		}
	}
	if resolved {
		t.Fatal("scheme rejection must happen before DNS resolution")
	}
}

func TestValidateRejectsMissingHostname(t *testing.T) {
	f := testFetcher()
	_, err := f.Validate(context.Background(), "http://")
	if !errors.Is(err, ErrMissingHostname) {
		t.Fatalf("expected ErrMissingHostname, got %v", err)
	}
}

func TestValidateRejectsLocalhostWithoutResolving(t *testing.T) {
	f := testFetcher()
	f.resolve = func(context.Context, string) ([]net.IP, error) {
		t.Fatal("localhost must be rejected before resolution")
		return nil, nil
	}

	for _, raw := range []string{"http://localhost/admin", "https://LOCALHOST:8080/"} {
		_, err := f.Validate(context.Background(), raw)
		if !errors.Is(err, ErrDisallowedAddress) {
			t.Fatalf("%s: expected ErrDisallowedAddress, got %v", raw, err)
		}
	}
}

func TestValidateRejectsPrivateRanges(t *testing.T) {
	cases := []struct {
		addr  string
		match string
	}{
		{"10.1.2.3", "10.0.0.0/8"},
		{"127.0.0.1", "127.0.0.0/8"},
		{"172.16.9.9", "172.16.0.0/12"},
		{"172.31.255.1", "172.16.0.0/12"},
		{"192.168.1.5", "192.168.0.0/16"},
		{"169.254.169.254", "169.254.0.0/16"},
	}
	for _, tc := range cases {
		f := testFetcher()
		f.resolve = staticResolver(tc.addr)

		_, err := f.Validate(context.Background(), "http://internal.example.com/")
		if !errors.Is(err, ErrDisallowedAddress) {
			t.Fatalf("%s: expected ErrDisallowedAddress, got %v", tc.addr, err)
		}
		if !strings.Contains(err.Error(), tc.match) {
			t.Fatalf("%s: rejection should name range %s, got %q", tc.addr, tc.match, err)
		}
	}
}

func TestValidateRejectsLiteralPrivateIPWithoutResolving(t *testing.T) {
	f := testFetcher()
	f.resolve = func(context.Context, string) ([]net.IP, error) {
		t.Fatal("literal IP hosts must not be resolved")
		return nil, nil
	}

	_, err := f.Validate(context.Background(), "http://192.168.1.5/")
	if !errors.Is(err, ErrDisallowedAddress) {
		t.Fatalf("expected ErrDisallowedAddress, got %v", err)
	}
}

func TestValidateDistinguishesResolutionFailure(t *testing.T) {
	f := testFetcher()
	f.resolve = func(context.Context, string) ([]net.IP, error) {
		return nil, fmt.Errorf("no such host")
	}

	_, err := f.Validate(context.Background(), "http://does-not-exist.example/")
	if !errors.Is(err, ErrResolutionFailed) {
		t.Fatalf("expected ErrResolutionFailed, got %v", err)
	}
	if errors.Is(err, ErrDisallowedAddress) {
		t.Fatal("resolution failure must not look like a security rejection")
	}
}

func TestValidateApprovesPublicAddress(t *testing.T) {
	f := testFetcher()
	f.resolve = staticResolver("93.184.216.34")

	v, err := f.Validate(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v.IP.String() != "93.184.216.34" {
		t.Fatalf("expected pinned ip 93.184.216.34, got %s", v.IP)
	}
	if v.URL.Hostname() != "example.com" {
		t.Fatalf("expected hostname retained, got %s", v.URL.Hostname())
	}
}

func TestFetchPinsConnectionToValidatedAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Hello</p> <p>World</p></body></html>")
	}))
	defer srv.Close()

	srvURL, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	f := testFetcher()
	f.allowPrivate = true
	// The fake hostname only exists in this resolver; reaching the server
	// proves the dial used the validated address, not a second lookup.
	f.resolve = staticResolver("127.0.0.1")

	text, err := f.Fetch(context.Background(), "http://pinned.example.test:"+srvURL.Port()+"/")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if text != "Hello World" {
		t.Fatalf("expected stripped text %q, got %q", "Hello World", text)
	}
}

func TestFetchReportsNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()
	srvURL, _ := url.Parse(srv.URL)

	f := testFetcher()
	f.allowPrivate = true
	f.resolve = staticResolver("127.0.0.1")

	_, err := f.Fetch(context.Background(), "http://broken.example.test:"+srvURL.Port()+"/")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchRefusesCrossHostRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://other.example.test/", http.StatusFound)
	}))
	defer srv.Close()
	srvURL, _ := url.Parse(srv.URL)

	f := testFetcher()
	f.allowPrivate = true
	f.resolve = staticResolver("127.0.0.1")

	_, err := f.Fetch(context.Background(), "http://redirect.example.test:"+srvURL.Port()+"/")
	if err == nil {
		t.Fatal("expected cross-host redirect to fail")
	}
}

func TestReasonForError(t *testing.T) {
	cases := map[string]error{
		"invalid_scheme":     fmt.Errorf("wrap: %w", ErrInvalidScheme),
		"missing_hostname":   ErrMissingHostname,
		"resolution_failed":  fmt.Errorf("%w: x", ErrResolutionFailed),
		"disallowed_address": fmt.Errorf("%w: y", ErrDisallowedAddress),
		"fetch_failed":       ErrFetchFailed,
		"unknown":            errors.New("other"),
	}
	for want, err := range cases {
		if got := ReasonForError(err); got != want {
			t.Fatalf("ReasonForError(%v) = %q, want %q", err, got, want)
		}
	}
	if got := ReasonForError(nil); got != "" {
		t.Fatalf("ReasonForError(nil) = %q, want empty", got)
	}
}
