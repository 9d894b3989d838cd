package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const acceptHeader = "application/json, application/yaml;q=0.9, text/yaml;q=0.8, */*;q=0.1"

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("http support disabled")
	}

	reqCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if resp.ContentLength > l.limit {
		return nil, fmt.Errorf("document exceeds %d bytes", l.limit)
	}
	return l.readLimited(resp.Body)
}
