package jas_test

import (
	"testing"

	"github.com/goliatone/go-jadn/pkg/jas"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		raw      string
		kind     jas.SourceKind
		location string
		wantErr  bool
	}{
		{raw: "-", kind: jas.SourceKindStdin, location: jas.StdinLocation},
		{raw: " schemas/./slpf.jas.json ", kind: jas.SourceKindFile, location: "schemas/slpf.jas.json"},
		{raw: "https://example.com/slpf.jas.yaml", kind: jas.SourceKindURL, location: "https://example.com/slpf.jas.yaml"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}
	for _, tc := range cases {
		src, err := jas.ParseSource(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseSource(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tc.raw, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.location {
			t.Fatalf("ParseSource(%q) = %s %q, want %s %q", tc.raw, src.Kind(), src.Location(), tc.kind, tc.location)
		}
	}
}

func TestSourceFromURL_PanicsOnBadScheme(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for ftp URL")
		}
	}()
	jas.SourceFromURL("ftp://example.com/a.json")
}

func TestEncodingOf(t *testing.T) {
	cases := map[jas.Source]jas.Encoding{
		jas.SourceFromFile("a.json"):                         jas.EncodingJSON,
		jas.SourceFromFS("dir/a.YML"):                        jas.EncodingYAML,
		jas.SourceFromURL("https://example.com/a.yaml?v=2"): jas.EncodingYAML,
		jas.SourceInline("request"):                          jas.EncodingUnknown,
		jas.SourceFromStdin():                                jas.EncodingUnknown,
	}
	for src, want := range cases {
		if got := jas.EncodingOf(src); got != want {
			t.Fatalf("EncodingOf(%s %q) = %q, want %q", src.Kind(), src.Location(), got, want)
		}
	}
}

func TestDocument_EncodingAndDigest(t *testing.T) {
	jsonDoc := jas.MustNewDocument(jas.SourceInline("request"), []byte("  "+colorJSON))
	if jsonDoc.Encoding() != jas.EncodingJSON {
		t.Fatalf("expected sniffed JSON, got %q", jsonDoc.Encoding())
	}
	if _, err := jsonDoc.AST(); err != nil {
		t.Fatalf("ast: %v", err)
	}

	yamlDoc := jas.MustNewDocument(jas.SourceInline("request"), []byte("types:\n  - name: A\n    type: STRING\n"))
	if yamlDoc.Encoding() != jas.EncodingYAML {
		t.Fatalf("expected sniffed YAML, got %q", yamlDoc.Encoding())
	}
	tree, err := yamlDoc.AST()
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	if len(tree.Types) != 1 || tree.Types[0].Name != "A" {
		t.Fatalf("unexpected tree %#v", tree)
	}

	// The extension wins over the payload, so YAML under a .json name fails.
	mislabelled := jas.MustNewDocument(jas.SourceFromFS("a.json"), []byte("types: []\n"))
	if _, err := mislabelled.AST(); err == nil {
		t.Fatalf("expected JSON decode error for mislabelled document")
	}

	again := jas.MustNewDocument(jas.SourceFromFile("other.yaml"), yamlDoc.Raw())
	if again.Digest() != yamlDoc.Digest() || again.Digest() == jsonDoc.Digest() {
		t.Fatalf("digest should depend on the payload only")
	}
	if len(yamlDoc.Digest()) != 64 {
		t.Fatalf("unexpected digest %q", yamlDoc.Digest())
	}
}

func TestNewDocument_RejectsBlank(t *testing.T) {
	if _, err := jas.NewDocument(jas.SourceInline("x"), []byte(" \n")); err == nil {
		t.Fatalf("expected error for blank payload")
	}
	if _, err := jas.NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
