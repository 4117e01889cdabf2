package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBucket stores objects under a directory served as static files.
type LocalBucket struct {
	root    string
	baseURL string
}

// NewLocalBucket returns a bucket rooted at dir whose objects are served under baseURL.
func NewLocalBucket(dir, baseURL string) *LocalBucket {
	return &LocalBucket{root: dir, baseURL: baseURL}
}

// Root returns the directory backing the bucket.
func (b *LocalBucket) Root() string {
	return b.root
}

// Upload writes body to key. Without Upsert an existing file yields ErrObjectExists.
func (b *LocalBucket) Upload(ctx context.Context, key string, body io.Reader, _ int64, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}

	target := filepath.Join(b.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if opts.Upsert {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(target, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrObjectExists, cleaned)
		}
		return fmt.Errorf("open %s: %w", cleaned, err)
	}

	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(target)
		return fmt.Errorf("write %s: %w", cleaned, err)
	}
	return file.Close()
}

// PublicURL returns the URL the static file server exposes key under.
func (b *LocalBucket) PublicURL(key string) string {
	return joinURL(b.baseURL, key)
}

// Remove deletes keys; missing files are not an error.
func (b *LocalBucket) Remove(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		cleaned, err := CleanKey(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		target := filepath.Join(b.root, filepath.FromSlash(cleaned))
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", cleaned, err))
		}
	}
	return errors.Join(errs...)
}
