package router

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FragmentSource retrieves the static HTML fragment backing a route key.
// Each static route maps to one "<key>.html" document, fetched once and then
// served from the page cache.
type FragmentSource interface {
	Fragment(ctx context.Context, key string) (string, error)
}

// HTTPFragmentSource fetches fragments from a same-origin base URL.
type HTTPFragmentSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFragmentSource(baseURL string, client *http.Client) *HTTPFragmentSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFragmentSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (s *HTTPFragmentSource) Fragment(ctx context.Context, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s.html", s.baseURL, key), nil)
	if err != nil {
		return "", fmt.Errorf("fragment %s: %w", key, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fragment %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fragment %s: unexpected status %d", key, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fragment %s: %w", key, err)
	}
	return string(body), nil
}

// DirFragmentSource serves fragments from a local directory.
type DirFragmentSource struct {
	dir string
}

func NewDirFragmentSource(dir string) *DirFragmentSource {
	return &DirFragmentSource{dir: dir}
}

func (s *DirFragmentSource) Fragment(ctx context.Context, key string) (string, error) {
	// Route keys are single path segments; anything else must not be able
	// to escape the fragments directory.
	if strings.ContainsAny(key, "/\\.") {
		return "", fmt.Errorf("fragment %s: invalid key", key)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, key+".html"))
	if err != nil {
		return "", fmt.Errorf("fragment %s: %w", key, err)
	}
	return string(data), nil
}
