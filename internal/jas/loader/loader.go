package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-jadn/pkg/jas"
)

type fetchFunc func(ctx context.Context, location string) ([]byte, error)

// Loader implements jas.Loader with one fetch strategy per source kind.
type Loader struct {
	fs       fs.FS
	http     *http.Client
	stdin    io.Reader
	timeout  time.Duration
	limit    int64
	fetchers map[jas.SourceKind]fetchFunc
}

var _ jas.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options jas.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := options.MaxDocumentBytes
	if limit <= 0 {
		limit = jas.DefaultMaxDocumentBytes
	}

	l := &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		stdin:   options.Stdin,
		timeout: timeout,
		limit:   limit,
	}
	l.fetchers = map[jas.SourceKind]fetchFunc{
		jas.SourceKindFile:  l.fetchFile,
		jas.SourceKindFS:    l.fetchFS,
		jas.SourceKindURL:   l.fetchURL,
		jas.SourceKindStdin: l.fetchStdin,
	}
	return l
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src jas.Source) (jas.Document, error) {
	if src == nil {
		return jas.Document{}, errors.New("jas loader: source is nil")
	}

	fetch, ok := l.fetchers[src.Kind()]
	if !ok {
		return jas.Document{}, fmt.Errorf("jas loader: cannot load %s source %q", src.Kind(), src.Location())
	}
	data, err := fetch(ctx, src.Location())
	if err != nil {
		return jas.Document{}, fmt.Errorf("jas loader: %s %s: %w", src.Kind(), src.Location(), err)
	}
	return jas.NewDocument(src, data)
}
