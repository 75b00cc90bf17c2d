// Package store implements the persistent state layer of HearthGuard:
// the device collection and the append-only alert log, each backed by a
// flat JSON document. The two documents are the entire external contract;
// nothing else in the process writes them.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// readJSONDocument reads the JSON object at path and returns its top-level
// fields. A missing file and malformed JSON both yield ok=false — the
// dashboard must render even with no data — but malformed JSON is logged so
// an operator can tell corruption apart from a fresh install.
func readJSONDocument(path string) (map[string]json.RawMessage, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[store] read %s: %v", path, err)
		}
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[store] %s is not valid JSON, treating as empty: %v", filepath.Base(path), err)
		return nil, false
	}
	return raw, true
}

// writeJSONDocument marshals fields with two-space indentation and replaces
// path via a temp file + rename, so a crash mid-write never leaves a
// half-written document visible to readers.
func writeJSONDocument(path string, fields map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// splitCollection pulls the named array out of a document's top-level
// fields, leaving every other field behind for write-back. A document whose
// array fails to decode is treated as empty, same as a corrupt file.
func splitCollection[T any](raw map[string]json.RawMessage, key, path string) []T {
	body, exists := raw[key]
	if !exists {
		return nil
	}
	delete(raw, key)

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		log.Printf("[store] %q array in %s is malformed, treating as empty: %v", key, filepath.Base(path), err)
		return nil
	}
	return items
}

// joinCollection marshals items back under key alongside the retained
// extra fields and returns the complete top-level field set.
func joinCollection[T any](extra map[string]json.RawMessage, key string, items []T) (map[string]json.RawMessage, error) {
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshaling %q: %w", key, err)
	}

	fields := make(map[string]json.RawMessage, len(extra)+1)
	for k, v := range extra {
		fields[k] = v
	}
	fields[key] = body
	return fields, nil
}
