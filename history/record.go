package history

import (
	"fmt"
	"time"

	"github.com/vidqueue/vidqueue/track"
)

// Record is the persisted outcome of one entry.
type Record struct {
	URL       string    `json:"url"`
	Index     int       `json:"index"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	Expired   bool      `json:"expired,omitempty"`
	Bytes     int64     `json:"bytes"`
	Run       string    `json:"run"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Record) String() string {
	return fmt.Sprintf("%d. %s: %s", r.Index+1, r.Name, r.Status)
}

// FromResult builds a record for a queue result.
func FromResult(run string, result track.Result) *Record {
	r := &Record{
		URL:       result.Entry.URL,
		Index:     result.Index,
		Name:      result.Entry.Name,
		Status:    result.Status(),
		Expired:   result.Expired(),
		Bytes:     result.Bytes(),
		Run:       run,
		UpdatedAt: time.Now(),
	}
	if result.Err != nil {
		r.Error = result.Err.Error()
	}
	return r
}
