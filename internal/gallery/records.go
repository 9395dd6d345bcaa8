// Package gallery turns sticker-set records from the backend into a view
// description: normalization, preview extraction, and pure rendering.
package gallery

import (
	"strings"
	"sync"
	"time"
)

// StickerEntry is one medium inside a set's preview collection.
type StickerEntry struct {
	FileID     string `json:"file_id"`
	Emoji      string `json:"emoji,omitempty"`
	IsAnimated bool   `json:"is_animated,omitempty"`
}

// MediaCollection is a record's ordered preview media.
type MediaCollection struct {
	Stickers []StickerEntry `json:"stickers"`
}

// Record is an immutable sticker-set snapshot from the backend.
type Record struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	CreatedAt     Timestamp       `json:"createdAt"`
	OwnerID       int64           `json:"userId"`
	PreviewSource MediaCollection `json:"previewSource"`
}

// Timestamp tolerates the backend's zone-less datetime format alongside
// RFC 3339.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339 or "2006-01-02T15:04:05".
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}

	// Unparseable dates degrade to zero rather than failing the whole
	// listing.
	t.Time = time.Time{}
	return nil
}

// WorkingSet is the last successfully fetched records: the single source of
// truth for subsequent detail and delete lookups by id. Replaced wholesale on
// every successful fetch.
type WorkingSet struct {
	mu      sync.Mutex
	records []Record
}

// Replace swaps in a freshly fetched record list.
func (w *WorkingSet) Replace(records []Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = records
}

// Records returns the current record list.
func (w *WorkingSet) Records() []Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.records
}

// Find looks a record up by id.
func (w *WorkingSet) Find(id int64) (Record, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, record := range w.records {
		if record.ID == id {
			return record, true
		}
	}
	return Record{}, false
}

// Filter returns the records whose title contains term, case-insensitively.
// An empty term keeps everything.
func Filter(records []Record, term string) []Record {
	if term == "" {
		return records
	}

	term = strings.ToLower(term)
	matched := make([]Record, 0, len(records))
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Title), term) {
			matched = append(matched, record)
		}
	}
	return matched
}
