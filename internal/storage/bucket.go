// Package storage holds the object-storage backends behind the shared media bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrObjectExists is returned by Upload when upsert is disabled and the key is taken.
var ErrObjectExists = errors.New("object already exists")

// ErrInvalidKey is returned for empty keys or keys escaping the bucket root.
var ErrInvalidKey = errors.New("invalid object key")

// UploadOptions mirrors the knobs the media layer sets on every upload.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	Upsert       bool
}

// Bucket is one named bucket of public media objects addressed by slash-separated keys.
type Bucket interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, opts UploadOptions) error
	PublicURL(key string) string
	Remove(ctx context.Context, keys ...string) error
}

// CleanKey normalises a key and rejects anything that would leave the bucket.
func CleanKey(key string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	trimmed = strings.TrimLeft(trimmed, "/")
	if trimmed == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
