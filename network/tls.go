package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"github.com/vidqueue/vidqueue/log"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// fingerprintTransport performs HTTPS requests with a Chrome ClientHello.
// Some CDNs answer the Go TLS fingerprint with 403 or a challenge page.
//
// HTTP/2 is tried first; hosts that fail to negotiate it are remembered and
// served over HTTP/1.1 with the same fingerprint. Plain HTTP bypasses utls.
type fingerprintTransport struct {
	h2    *http2.Transport
	h1    *http.Transport
	plain *http.Transport

	mu     sync.Mutex
	h1Only map[string]bool
}

func newFingerprintTransport() *fingerprintTransport {
	t := &fingerprintTransport{
		plain:  newTransport(),
		h1Only: make(map[string]bool),
	}
	t.h2 = &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dialChrome(ctx, network, addr, nil)
		},
	}
	t.h1 = &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialChrome(ctx, network, addr, []string{"http/1.1"})
		},
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       30 * time.Second,
	}
	return t
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	host := req.URL.Host
	t.mu.Lock()
	h1Only := t.h1Only[host]
	t.mu.Unlock()

	if !h1Only {
		resp, err := t.h2.RoundTrip(req)
		if err == nil {
			return resp, nil
		}
		// Only bodiless requests can be replayed; manifest and segment GETs are.
		if req.Body != nil && req.Body != http.NoBody {
			return nil, err
		}
		if req.Context().Err() != nil {
			return nil, err
		}

		log.Debugf("h2 to %s failed, falling back to http/1.1: %s", host, err)
		t.mu.Lock()
		t.h1Only[host] = true
		t.mu.Unlock()
	}

	return t.h1.RoundTrip(req)
}

// dialChrome opens a TLS connection mimicking Chrome 120. A nil alpn keeps the
// fingerprint's own ALPN list (h2 and http/1.1).
func dialChrome(ctx context.Context, network, addr string, alpn []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: alpn,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
