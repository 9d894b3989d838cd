package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

func (l *Loader) fetchFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.readLimited(f)
}

func (l *Loader) fetchFS(ctx context.Context, name string) ([]byte, error) {
	if l.fs == nil {
		return nil, errors.New("filesystem is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	return l.readLimited(f)
}

func (l *Loader) fetchStdin(ctx context.Context, _ string) ([]byte, error) {
	if l.stdin == nil {
		return nil, errors.New("standard input is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.readLimited(l.stdin)
}

// readLimited reads at most limit bytes and fails when the source holds more.
func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.limit {
		return nil, fmt.Errorf("document exceeds %d bytes", l.limit)
	}
	return data, nil
}
