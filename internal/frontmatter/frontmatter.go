// Package frontmatter provides helpers for reading and writing markdown files
// that carry YAML frontmatter between --- delimiters.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"folio/internal/post"
)

const delim = "---"

var bom = []byte("\xEF\xBB\xBF")

// Split separates a document into its frontmatter (raw YAML bytes) and body.
// The document must begin with a line holding only "---"; the next such line
// closes the block. A leading UTF-8 byte order mark and CRLF line endings are
// accepted. The body is returned unmodified.
func Split(path string, data []byte) (meta []byte, body []byte, err error) {
	data = bytes.TrimPrefix(data, bom)

	first, rest, ok := cutLine(data)
	if !isDelim(first) {
		return nil, nil, post.Malformed(path, "missing opening --- delimiter", nil)
	}
	if !ok {
		return nil, nil, post.Malformed(path, "missing closing --- delimiter", nil)
	}

	offset := 0
	for offset < len(rest) {
		line, tail, _ := cutLine(rest[offset:])
		if isDelim(line) {
			return rest[:offset], tail, nil
		}
		offset = len(rest) - len(tail)
	}
	return nil, nil, post.Malformed(path, "missing closing --- delimiter", nil)
}

// Decode unmarshals a frontmatter block into v. Keys that v does not declare
// are rejected, as are lines that are not valid YAML mappings. An empty block
// leaves v untouched.
func Decode(path string, meta []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(meta))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return post.Malformed(path, "invalid frontmatter", err)
	}
	return nil
}

// Parse splits data and decodes its frontmatter into v, returning the body.
func Parse(path string, data []byte, v any) ([]byte, error) {
	meta, body, err := Split(path, data)
	if err != nil {
		return nil, err
	}
	if err := Decode(path, meta, v); err != nil {
		return nil, err
	}
	return body, nil
}

// Compose renders meta as a frontmatter block followed by body. Parsing the
// result with Parse yields meta and body again. Test fixtures are built with it.
func Compose(meta PostMeta, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("frontmatter: encode %q: %w", meta.Title, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("frontmatter: encode %q: %w", meta.Title, err)
	}
	buf.WriteString(delim + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// cutLine returns the first line of b (without its terminator) and the bytes
// after the terminator. ok is false when b has no newline.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}

func isDelim(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == delim
}
