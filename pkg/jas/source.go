package jas

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a syntax tree document comes from.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the places a loader can read from.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindStdin SourceKind = "stdin"
	// SourceKindInline marks documents whose bytes were handed over directly,
	// such as a request body. Loaders cannot fetch them.
	SourceKindInline SourceKind = "inline"
)

// Encoding is the serialization of a syntax tree document.
type Encoding string

const (
	EncodingUnknown Encoding = ""
	EncodingJSON    Encoding = "json"
	EncodingYAML    Encoding = "yaml"
)

// StdinLocation is the conventional location that selects standard input.
const StdinLocation = "-"

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

func (s source) String() string {
	return string(s.kind) + ":" + s.location
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(p string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(p)}
}

// SourceFromFS returns a Source naming an entry of the loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: path.Clean(name)}
}

// SourceFromStdin returns a Source reading the document from standard input.
func SourceFromStdin() Source {
	return source{kind: SourceKindStdin, location: StdinLocation}
}

// SourceInline labels bytes obtained outside a loader. The name is used in
// diagnostics and its extension, if any, as an encoding hint.
func SourceInline(name string) Source {
	return source{kind: SourceKindInline, location: name}
}

// SourceFromURL returns a Source for an http or https URL. It panics if the
// URL is invalid; use ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}

func urlSource(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("jas: empty URL source")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("jas: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("jas: unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("jas: URL %q has no host", raw)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

// ParseSource interprets a command-line style location: "-" is standard
// input, http(s) URLs are remote documents and anything else is a file path.
func ParseSource(raw string) (Source, error) {
	loc := strings.TrimSpace(raw)
	switch {
	case loc == "":
		return nil, fmt.Errorf("jas: source location is required")
	case loc == StdinLocation:
		return SourceFromStdin(), nil
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return urlSource(loc)
	default:
		return SourceFromFile(loc), nil
	}
}

// EncodingOf guesses the document encoding from the location's extension.
func EncodingOf(src Source) Encoding {
	if src == nil {
		return EncodingUnknown
	}
	loc := src.Location()
	if src.Kind() == SourceKindURL {
		if u, err := url.Parse(loc); err == nil {
			loc = u.Path
		}
	}
	switch strings.ToLower(path.Ext(loc)) {
	case ".json":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingUnknown
	}
}
