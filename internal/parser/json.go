package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KaramelBytes/vizprofile-cli/internal/table"
)

type jsonLoader struct{}

func (jsonLoader) CanLoad(filename string) bool { return hasExt(filename, ".json") }

func (jsonLoader) Extensions() []string { return []string{".json"} }

func (jsonLoader) Load(_ context.Context, path string, opt Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f, opt)
}

// DecodeJSON reads records while keeping each object's key order. The
// top-level value may be an array of objects, an object holding such an
// array under any key (the first array wins), or a single object read as
// one row. Numbers are kept as json.Number.
func DecodeJSON(src io.Reader, opt Options) (*Result, error) {
	dec := json.NewDecoder(src)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", table.ErrMalformedInput)
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("%w: top-level %T", table.ErrMalformedInput, tok)
	}
	switch d {
	case '[':
		return readRecords(dec, opt)
	case '{':
		return readWrapper(dec, opt)
	}
	return nil, fmt.Errorf("%w: unexpected %v", table.ErrMalformedInput, d)
}

// readRecords consumes array elements up to and including the closing ']'.
func readRecords(dec *json.Decoder, opt Options) (*Result, error) {
	res := &Result{Table: table.Table{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", table.ErrMalformedInput, res.TotalRows)
		}
		rec, err := readObject(dec)
		if err != nil {
			return nil, err
		}
		res.TotalRows++
		if opt.MaxRows > 0 && len(res.Table) >= opt.MaxRows {
			continue
		}
		res.Table = append(res.Table, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return res, nil
}

func readWrapper(dec *json.Decoder, opt Options) (*Result, error) {
	var single table.Record
	var found *Result
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '[' && found == nil {
			if found, err = readRecords(dec, opt); err != nil {
				return nil, err
			}
			continue
		}
		v, err := readValue(dec, tok)
		if err != nil {
			return nil, err
		}
		single.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if found != nil {
		return found, nil
	}
	return &Result{Table: table.Table{single}, TotalRows: 1}, nil
}

// readObject consumes an object body after its opening '{'.
func readObject(dec *json.Decoder) (table.Record, error) {
	var rec table.Record
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return rec, err
		}
		tok, err := dec.Token()
		if err != nil {
			return rec, fmt.Errorf("decode json: %w", err)
		}
		v, err := readValue(dec, tok)
		if err != nil {
			return rec, err
		}
		rec.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return rec, fmt.Errorf("decode json: %w", err)
	}
	return rec, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: object key %v", table.ErrMalformedInput, tok)
	}
	return key, nil
}

// readValue finishes the value that starts with tok. Nested objects and
// arrays become map[string]any and []any.
func readValue(dec *json.Decoder, tok json.Token) (any, error) {
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		m := map[string]any{}
		for dec.More() {
			key, err := readKey(dec)
			if err != nil {
				return nil, err
			}
			next, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("decode json: %w", err)
			}
			if m[key], err = readValue(dec, next); err != nil {
				return nil, err
			}
		}
		_, err := dec.Token()
		return m, err
	case '[':
		s := []any{}
		for dec.More() {
			next, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("decode json: %w", err)
			}
			v, err := readValue(dec, next)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		_, err := dec.Token()
		return s, err
	}
	return nil, fmt.Errorf("%w: unexpected %v", table.ErrMalformedInput, d)
}
