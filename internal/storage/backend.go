package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// backendStore proxies the backend's static /uploads/{name} route.
type backendStore struct {
	base *url.URL
	http *http.Client
}

// NewBackend returns a FileStore reading from the archive backend at baseURL.
func NewBackend(baseURL string, hc *http.Client) (FileStore, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse files base url: %w", err)
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &backendStore{base: u, http: hc}, nil
}

func (b *backendStore) Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	key, err := CleanName(name)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	u := *b.base
	u.Path = b.base.Path + "/uploads/" + key
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("fetch file: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, ObjectInfo{}, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}

	info := ObjectInfo{
		Key:         key,
		Size:        resp.ContentLength,
		ETag:        resp.Header.Get("ETag"),
		ContentType: resp.Header.Get("Content-Type"),
	}
	if lm, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
		info.LastModified = lm
	}
	return resp.Body, info, nil
}
