package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetch error taxonomy. ErrResolutionFailed is an operational failure, not a
// security rejection; callers that report block reasons must distinguish it
// from ErrDisallowedAddress.
var (
	ErrInvalidScheme     = errors.New("invalid url scheme")
	ErrMissingHostname   = errors.New("url missing hostname")
	ErrResolutionFailed  = errors.New("hostname resolution failed")
	ErrDisallowedAddress = errors.New("disallowed address")
	ErrFetchFailed       = errors.New("fetch failed")
)

var disallowedRanges = []struct {
	name  string
	block *net.IPNet
}{
	{"10.0.0.0/8", mustParseCIDR("10.0.0.0/8")},
	{"127.0.0.0/8", mustParseCIDR("127.0.0.0/8")},
	{"172.16.0.0/12", mustParseCIDR("172.16.0.0/12")},
	{"192.168.0.0/16", mustParseCIDR("192.168.0.0/16")},
	{"169.254.0.0/16", mustParseCIDR("169.254.0.0/16")},
}

func mustParseCIDR(value string) *net.IPNet {
	_, parsed, err := net.ParseCIDR(value)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR %q: %v", value, err))
	}
	return parsed
}

// ValidatedURL is an approved fetch target: the parsed URL plus the single
// resolved address every connection for this request must dial.
type ValidatedURL struct {
	URL *url.URL
	IP  net.IP
}

// Fetcher retrieves public web pages as plain text. The hostname is resolved
// exactly once during validation and the HTTP transport dials that address
// directly, so DNS cannot be re-resolved to an internal target between the
// range check and the connection.
type Fetcher struct {
	timeout time.Duration
	maxBody int64
	resolve func(ctx context.Context, host string) ([]net.IP, error)

	// test hook: permits loopback targets so httptest servers are reachable.
	allowPrivate bool
}

func NewFetcher(timeout time.Duration, maxBody int64) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxBody <= 0 {
		maxBody = 4 << 20
	}
	return &Fetcher{
		timeout: timeout,
		maxBody: maxBody,
		resolve: func(ctx context.Context, host string) ([]net.IP, error) {
			return net.DefaultResolver.LookupIP(ctx, "ip4", host)
		},
	}
}

// Validate approves or rejects a fetch target without issuing any request.
// The returned error is one of ErrInvalidScheme, ErrMissingHostname,
// ErrResolutionFailed or ErrDisallowedAddress.
func (f *Fetcher) Validate(ctx context.Context, rawURL string) (*ValidatedURL, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheme, err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https are allowed, got %q", ErrInvalidScheme, parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, ErrMissingHostname
	}

	// Defense in depth: reject the localhost literal before touching DNS.
	if strings.EqualFold(host, "localhost") {
		return nil, fmt.Errorf("%w: localhost is not allowed", ErrDisallowedAddress)
	}

	if ip := net.ParseIP(host); ip != nil {
		if err := f.checkAddress(ip); err != nil {
			return nil, err
		}
		return &ValidatedURL{URL: parsed, IP: ip}, nil
	}

	ips, err := f.resolve(ctx, host)
	if err != nil || len(ips) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrResolutionFailed, host)
	}
	ip := ips[0]
	if err := f.checkAddress(ip); err != nil {
		return nil, err
	}
	return &ValidatedURL{URL: parsed, IP: ip}, nil
}

func (f *Fetcher) checkAddress(ip net.IP) error {
	if f.allowPrivate {
		return nil
	}
	if ip4 := ip.To4(); ip4 != nil {
		for _, r := range disallowedRanges {
			if r.block.Contains(ip4) {
				return fmt.Errorf("%w: %s is in %s", ErrDisallowedAddress, ip4, r.name)
			}
		}
		return nil
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
		return fmt.Errorf("%w: %s is not a public address", ErrDisallowedAddress, ip)
	}
	return nil
}

// Fetch validates the URL, GETs it with connections pinned to the validated
// address, and returns the page body stripped down to plain text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := f.Validate(ctx, rawURL)
	if err != nil {
		return "", err
	}

	client := f.pinnedClient(target)
	defer client.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: http status %s", ErrFetchFailed, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}

	return HTMLToText(string(body)), nil
}

// pinnedClient dials every connection to the already-validated address. TLS
// verification still uses the URL hostname, so certificates must match.
// Redirects may only stay on the validated host; anything else would escape
// the pinned address.
func (f *Fetcher) pinnedClient(target *ValidatedURL) *http.Client {
	dialer := &net.Dialer{Timeout: f.timeout}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			_, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			return dialer.DialContext(ctx, network, net.JoinHostPort(target.IP.String(), port))
		},
		TLSHandshakeTimeout:   f.timeout,
		ResponseHeaderTimeout: f.timeout,
	}
	host := target.URL.Hostname()
	return &http.Client{
		Transport: transport,
		Timeout:   f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("%w: too many redirects", ErrFetchFailed)
			}
			if !strings.EqualFold(req.URL.Hostname(), host) {
				return fmt.Errorf("%w: cross-host redirect to %s refused", ErrDisallowedAddress, req.URL.Hostname())
			}
			return nil
		},
	}
}

// ReasonForError maps a fetch error to a stable label for metrics.
func ReasonForError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidScheme):
		return "invalid_scheme"
	case errors.Is(err, ErrMissingHostname):
		return "missing_hostname"
	case errors.Is(err, ErrResolutionFailed):
		return "resolution_failed"
	case errors.Is(err, ErrDisallowedAddress):
		return "disallowed_address"
	case errors.Is(err, ErrFetchFailed):
		return "fetch_failed"
	default:
		return "unknown"
	}
}
