package jas

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Document is a serialized syntax tree together with where it came from.
// The payload is copied on the way in and on the way out.
type Document struct {
	source   Source
	encoding Encoding
	raw      []byte
}

// NewDocument wraps raw bytes read from src. The encoding is taken from the
// source extension and, failing that, sniffed from the payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("jas: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("jas: document " + src.Location() + " is empty")
	}

	enc := EncodingOf(src)
	if enc == EncodingUnknown {
		enc = sniff(raw)
	}
	return Document{source: src, encoding: enc, raw: bytes.Clone(raw)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// sniff treats payloads opening with '{' or '[' as JSON. Everything else is
// left to the YAML decoder, which also accepts JSON.
func sniff(raw []byte) Encoding {
	trimmed := bytes.TrimLeft(raw, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return EncodingJSON
	}
	return EncodingYAML
}

func (d Document) Source() Source     { return d.source }
func (d Document) Encoding() Encoding { return d.encoding }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return bytes.Clone(d.raw)
}

// Location returns the origin's location string.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Digest is the hex SHA-256 of the payload. Callers use it to cache compiled
// schemas by content.
func (d Document) Digest() string {
	sum := sha256.Sum256(d.raw)
	return hex.EncodeToString(sum[:])
}

// AST decodes the payload into a syntax tree.
func (d Document) AST() (AST, error) {
	return ParseEncoded(d.raw, d.Location(), d.encoding)
}
