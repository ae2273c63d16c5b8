package manifest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/network"
	"github.com/vidqueue/vidqueue/util"
)

// DefaultTimeout bounds a whole manifest request.
const DefaultTimeout = 30 * time.Second

// Fetcher downloads and decodes manifests. It never retries.
type Fetcher struct {
	Client  network.Doer
	Timeout time.Duration
}

// NewFetcher returns a fetcher using client.
func NewFetcher(client network.Doer) *Fetcher {
	return &Fetcher{Client: client, Timeout: DefaultTimeout}
}

// Fetch retrieves the manifest at rawURL. index is the catalog position, reported by ExpiredError.
func (f *Fetcher) Fetch(ctx context.Context, index int, rawURL string) (*Manifest, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", rawURL)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer util.Ignore(resp.Body.Close)

	if isGone(resp) {
		return nil, &ExpiredError{Index: index, URL: rawURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, Status: resp.Status, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, &ParseError{URL: rawURL, Err: err}
	}

	log.Debugf("manifest %s: %d video, %d audio renditions", rawURL, len(m.Video), len(m.Audio))
	return &m, nil
}

// isGone matches on the status code and on the reason phrase, since some
// CDNs send "Gone" with an unusual code.
func isGone(resp *http.Response) bool {
	if resp.StatusCode == http.StatusGone {
		return true
	}
	_, reason, _ := strings.Cut(resp.Status, " ")
	return strings.EqualFold(strings.TrimSpace(reason), "gone")
}
