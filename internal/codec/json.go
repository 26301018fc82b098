package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ipannotate/internal/domain"
)

// JSONCodec handles the manual.json document: a root object mapping each
// address to its record, in insertion order.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads the document token by token so key order survives. Records
// are kept as written, unknown keys included.
func (c *JSONCodec) Parse(r io.Reader) (*domain.Annotations, error) {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("failed to parse JSON: expected object at document root, got %v", tok)
	}

	annotations := domain.NewAnnotations()
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		ip, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse JSON: unexpected token %v", tok)
		}

		var entry domain.Entry
		if err := decoder.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to parse JSON record %s: %w", ip, err)
		}
		annotations.Put(ip, entry)
	}

	// closing brace
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse JSON: unexpected data after document")
	}

	return annotations, nil
}

// Export writes the document with two-space indentation. Non-ASCII text and
// HTML characters are written unescaped.
func (c *JSONCodec) Export(annotations *domain.Annotations, w io.Writer) error {
	var compact bytes.Buffer
	compact.WriteByte('{')

	var encodeErr error
	first := true
	annotations.Each(func(ip string, entry domain.Entry) {
		if encodeErr != nil {
			return
		}
		if !first {
			compact.WriteByte(',')
		}
		first = false

		if err := encodeValue(&compact, ip); err != nil {
			encodeErr = err
			return
		}
		compact.WriteByte(':')
		if err := encodeValue(&compact, entry); err != nil {
			encodeErr = fmt.Errorf("record %s: %w", ip, err)
		}
	})
	if encodeErr != nil {
		return fmt.Errorf("failed to encode JSON: %w", encodeErr)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	out.WriteByte('\n')

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	// Encode terminates each value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
