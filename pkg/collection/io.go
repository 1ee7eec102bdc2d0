package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// document is the JSON wire shape for an item collection.
type document struct {
	Items []Item `json:"items"`
}

// Read decodes a JSON item collection from r.
//
// The input must be a JSON object with an "items" array:
//
//	{
//	  "items": [
//	    {"key": "a", "size": {"width": 400, "height": 300}},
//	    {"key": "b"}
//	  ]
//	}
//
// Each item must have a non-empty, unique "key". Optional fields:
//   - size: intrinsic {width, height} used for height estimation
//   - meta: object with arbitrary key-value pairs
//
// Read returns an error if the JSON is malformed, a key is empty, or a key
// appears twice. Read does not close r.
func Read(r io.Reader) (*List, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return NewList(doc.Items...)
}

// Write encodes a collection as indented JSON to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(col Collection, w io.Writer) error {
	doc := document{Items: make([]Item, 0, col.Len())}
	for _, k := range col.Keys() {
		if it, ok := col.Item(k); ok {
			doc.Items = append(doc.Items, it)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON items file at path and returns the decoded list.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// ExportJSON writes a collection to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func ExportJSON(col Collection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(col, f)
}
