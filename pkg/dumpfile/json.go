package dumpfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// LoadJSON reads a JSON dump from path, preserving object key order.
// Objects decode to *sequencedmap.Map[string, any], arrays to []any,
// numbers to float64, matching the value shapes the scanner consumes.
func LoadJSON(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode %s: trailing data after value", path)
	}
	return v, nil
}

// decodeValue walks the decoder token stream so object key order
// survives; a plain Unmarshal into map[string]any would lose it.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", d.String())
	}
	// string, float64, bool or nil
	return tok, nil
}

func decodeObject(dec *json.Decoder) (*sequencedmap.Map[string, any], error) {
	obj := sequencedmap.New[string, any]()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// SaveJSON writes v to path as tab-indented JSON, keeping the key order
// of ordered records. Parent directories are created as needed.
func SaveJSON(path string, v any) error {
	var compact bytes.Buffer
	if err := encodeValue(&compact, v); err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "\t"); err != nil {
		return fmt.Errorf("indent dump: %w", err)
	}
	out.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dump dir: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

func encodeValue(b *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *sequencedmap.Map[string, any]:
		b.WriteByte('{')
		first := true
		if t != nil {
			for k, child := range t.All() {
				if !first {
					b.WriteByte(',')
				}
				first = false
				if err := encodeLeaf(b, k); err != nil {
					return err
				}
				b.WriteByte(':')
				if err := encodeValue(b, child); err != nil {
					return err
				}
			}
		}
		b.WriteByte('}')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeLeaf(b, k); err != nil {
				return err
			}
			b.WriteByte(':')
			if err := encodeValue(b, t[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil
	case []any:
		b.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeValue(b, el); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	default:
		return encodeLeaf(b, v)
	}
}

func encodeLeaf(b *bytes.Buffer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.Write(raw)
	return nil
}
