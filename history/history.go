// Package history keeps the last outcome of every catalog entry, keyed by manifest URL.
package history

import (
	"sort"
	"time"

	"github.com/metafates/gache"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/track"
	"github.com/vidqueue/vidqueue/where"
)

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// List returns records ordered by catalog position, then by name.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(saved))
	for _, r := range saved {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Index != records[j].Index {
			return records[i].Index < records[j].Index
		}
		return records[i].Name < records[j].Name
	})
	return records, nil
}

// Save stores r, replacing any record for the same URL.
func Save(r *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now()
	}
	saved[r.URL] = r

	return cacher.Set(saved)
}

// Remove deletes the record of url.
func Remove(url string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, url)
	return cacher.Set(saved)
}

// Clear deletes every record.
func Clear() error {
	return cacher.Set(make(map[string]*Record))
}

// Recorder saves queue results.
type Recorder struct{}

// Record converts and saves a result.
func (Recorder) Record(run string, result track.Result) error {
	return Save(FromResult(run, result))
}
