package watchlist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the import/export format.
// It is the persisted representation itself: a JSON array of tokens, so that
// an export can be pasted back in any store.

// DefaultImportPath selects every element of a top level array.
const DefaultImportPath = "$[*]"

// ExportTokens writes entries to w as an indented JSON array of tokens.
func ExportTokens(w io.Writer, entries []Entry) error {
	data, err := json.MarshalIndent(EncodeTokens(entries), "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal tokens: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write tokens: %w", err)
	}
	return nil
}

// ImportTokens reads any JSON document from r and returns the entries selected
// by the jsonpath expression path, DefaultImportPath if empty.
//
// A selected value is either a token string like "sz000001-10", or an object
// whose property 'code' holds the code and optional property 'count' the
// number of lots.
func ImportTokens(r io.Reader, path string) ([]Entry, error) {
	if path == "" {
		path = DefaultImportPath
	}
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse import document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot select %q: %w", path, err)
	}
	// jsonpath returns a single value for a definite path, a list otherwise.
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}

	entries := make([]Entry, 0, len(jlist))
	for i, v := range jlist {
		e, err := importEntry(v)
		if err != nil {
			return nil, fmt.Errorf("cannot import element %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func importEntry(v any) (Entry, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return Entry{}, ErrEmptyCode
		}
		return DecodeToken(v), nil
	case map[string]any:
		code, _ := v["code"].(string)
		if code == "" {
			return Entry{}, ErrEmptyCode
		}
		switch count := v["count"].(type) {
		case nil:
			return E(code), nil
		case float64:
			if count < 0 || count != float64(int(count)) {
				return Entry{}, fmt.Errorf("invalid count %v for %q", count, code)
			}
			return P(code, int(count)), nil
		default:
			return Entry{}, fmt.Errorf("invalid count %v for %q", count, code)
		}
	default:
		return Entry{}, fmt.Errorf("unsupported value %v", v)
	}
}
