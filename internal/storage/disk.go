// Package storage keeps uploaded files on local disk for self-hosted
// deployments, behind the same surface the hosted object store exposes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"union-site-backend/internal/gateway"
)

var ErrInvalidPath = errors.New("invalid storage path")

type Disk struct {
	root    string
	baseURL string
}

// NewDisk serves objects from root; baseURL is the public prefix the files
// are exposed under (for example "/uploads").
func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &Disk{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// resolve rejects anything that could climb out of the root.
func (d *Disk) resolve(bucket, path string) (string, error) {
	rel := filepath.Join(bucket, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	full := filepath.Join(d.root, rel)
	if !strings.HasPrefix(full, filepath.Clean(d.root)+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

func (d *Disk) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	full, err := d.resolve(bucket, path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}

	url := d.baseURL + "/" + strings.TrimPrefix(path, "/")
	if bucket != "" {
		url = d.baseURL + "/" + bucket + "/" + strings.TrimPrefix(path, "/")
	}
	return url, nil
}

func (d *Disk) Delete(ctx context.Context, bucket, path string) error {
	full, err := d.resolve(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return gateway.ErrNotFound
		}
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func (d *Disk) Move(ctx context.Context, bucket, from, to string) error {
	src, err := d.resolve(bucket, from)
	if err != nil {
		return err
	}
	dst, err := d.resolve(bucket, to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		if os.IsNotExist(err) {
			return gateway.ErrNotFound
		}
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}
