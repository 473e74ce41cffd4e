package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Collection is a JSON-file-backed list of records. One file per collection,
// full list rewritten on every change, last write wins. There are no
// transactions; callers that need ordering must serialize themselves.
type Collection[T Record] struct {
	path    string
	onError func(error) // receives decode errors; never fails the caller
}

// NewCollection creates a collection stored at path. onError may be nil.
func NewCollection[T Record](path string, onError func(error)) *Collection[T] {
	return &Collection[T]{path: path, onError: onError}
}

// List returns all records in insertion order. A missing file yields an empty
// list. A file that fails to decode also yields an empty list — the error is
// reported through onError and the store carries on.
func (c *Collection[T]) List() []T {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		c.report(fmt.Errorf("read %s: %w", filepath.Base(c.path), err))
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.report(fmt.Errorf("decode %s: %w", filepath.Base(c.path), err))
		return nil
	}
	return records
}

// Save inserts the record, or replaces the existing record with the same ID.
func (c *Collection[T]) Save(rec T) error {
	records := c.List()
	replaced := false
	for i := range records {
		if records[i].RecordID() == rec.RecordID() {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	return c.ReplaceAll(records)
}

// Delete removes the record with the given ID. Unknown IDs are a no-op.
func (c *Collection[T]) Delete(id string) error {
	records := c.List()
	filtered := records[:0]
	for _, r := range records {
		if r.RecordID() != id {
			filtered = append(filtered, r)
		}
	}
	return c.ReplaceAll(filtered)
}

// Get returns the record with the given ID, or false if absent.
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, r := range c.List() {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// ReplaceAll atomically writes the full record list via tmpfile + rename.
func (c *Collection[T]) ReplaceAll(records []T) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(c.path), err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (c *Collection[T]) report(err error) {
	if c.onError != nil {
		c.onError(err)
	}
}
