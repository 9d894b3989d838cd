package loader_test

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-jadn/internal/jas/loader"
	"github.com/goliatone/go-jadn/pkg/jas"
)

const payload = `{"types":[{"name":"A","type":"STRING"}]}`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := loader.New(jas.NewLoaderOptions())
	doc, err := l.Load(context.Background(), jas.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tree, err := doc.AST()
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	if len(tree.Types) != 1 || tree.Types[0].Name != "A" {
		t.Fatalf("unexpected tree %#v", tree)
	}
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{"schemas/a.json": {Data: []byte(payload)}}
	l := loader.New(jas.NewLoaderOptions(jas.WithFileSystem(files)))
	doc, err := l.Load(context.Background(), jas.SourceFromFS("schemas/a.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "schemas/a.json" {
		t.Fatalf("location mismatch: %s", doc.Location())
	}

	bare := loader.New(jas.NewLoaderOptions())
	if _, err := bare.Load(context.Background(), jas.SourceFromFS("schemas/a.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	disabled := loader.New(jas.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), jas.SourceFromURL(server.URL+"/a.json")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := loader.New(jas.NewLoaderOptions(jas.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), jas.SourceFromURL(server.URL+"/a.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("payload mismatch: %s", doc.Raw())
	}

	if _, err := l.Load(context.Background(), jas.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := loader.New(jas.NewLoaderOptions())
	if _, err := l.Load(ctx, jas.SourceFromFile("whatever.json")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoad_Stdin(t *testing.T) {
	l := loader.New(jas.NewLoaderOptions(jas.WithStdin(strings.NewReader("types:\n  - name: A\n    type: STRING\n"))))
	doc, err := l.Load(context.Background(), jas.SourceFromStdin())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Encoding() != jas.EncodingYAML {
		t.Fatalf("expected YAML encoding, got %q", doc.Encoding())
	}

	bare := loader.New(jas.NewLoaderOptions())
	if _, err := bare.Load(context.Background(), jas.SourceFromStdin()); err == nil {
		t.Fatalf("expected error without stdin")
	}
}

func TestLoad_SizeLimit(t *testing.T) {
	files := fstest.MapFS{"big.json": {Data: []byte(payload)}}
	l := loader.New(jas.NewLoaderOptions(jas.WithFileSystem(files), jas.WithMaxDocumentBytes(8)))
	_, err := l.Load(context.Background(), jas.SourceFromFS("big.json"))
	if err == nil || !strings.Contains(err.Error(), "exceeds 8 bytes") {
		t.Fatalf("expected size error, got %v", err)
	}

	exact := loader.New(jas.NewLoaderOptions(jas.WithFileSystem(files), jas.WithMaxDocumentBytes(int64(len(payload)))))
	if _, err := exact.Load(context.Background(), jas.SourceFromFS("big.json")); err != nil {
		t.Fatalf("document at the limit should load: %v", err)
	}
}

func TestLoad_InlineSourceRejected(t *testing.T) {
	l := loader.New(jas.NewLoaderOptions())
	if _, err := l.Load(context.Background(), jas.SourceInline("request")); err == nil {
		t.Fatalf("inline sources cannot be loaded")
	}
}

func TestLoad_WrapsCause(t *testing.T) {
	l := loader.New(jas.NewLoaderOptions(jas.WithFileSystem(fstest.MapFS{})))
	_, err := l.Load(context.Background(), jas.SourceFromFS("missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}
