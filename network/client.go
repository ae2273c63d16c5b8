// Package network builds the HTTP client shared by manifest and segment requests.
package network

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/auth"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/log"
)

// Doer is satisfied by *http.Client and by test doubles.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options shape the headers and transport of a client.
type Options struct {
	UserAgent      string
	Referer        string
	Cookie         string
	TLSFingerprint bool
}

// New returns a client without an overall timeout: callers bound each request
// through its context, since segment bodies are streamed under an idle timer.
func New(opts Options) *http.Client {
	var base http.RoundTripper = newTransport()
	if opts.TLSFingerprint {
		base = newFingerprintTransport()
	}

	return &http.Client{
		Transport: &headerTransport{base: base, headers: opts.headers()},
	}
}

// FromConfig builds a client from the global configuration and the stored cookie, if any.
func FromConfig() *http.Client {
	opts := Options{
		UserAgent:      viper.GetString(key.NetworkUserAgent),
		Referer:        viper.GetString(key.NetworkReferer),
		TLSFingerprint: viper.GetBool(key.NetworkTLSFingerprint),
	}

	cookie, err := auth.GetCookie()
	switch {
	case err == nil:
		opts.Cookie = cookie
	case !auth.IsNotFound(err):
		log.Warnf("cookie unavailable: %s", err)
	}

	return New(opts)
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}

func (o Options) headers() http.Header {
	h := http.Header{}
	if o.UserAgent != "" {
		h.Set("User-Agent", o.UserAgent)
	}
	if o.Referer != "" {
		h.Set("Referer", o.Referer)
	}
	if o.Cookie != "" {
		h.Set("Cookie", o.Cookie)
	}
	return h
}

// headerTransport adds default headers that the request does not set itself.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	for name, values := range t.headers {
		if req.Header.Get(name) == "" {
			req.Header[name] = values
		}
	}
	return t.base.RoundTrip(req)
}
