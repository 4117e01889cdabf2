package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBucketUploadAndRemove(t *testing.T) {
	dir := t.TempDir()
	bucket := NewLocalBucket(dir, "/static/uploads/")

	err := bucket.Upload(context.Background(), "products/1700000000000.png", strings.NewReader("png-bytes"), 9, UploadOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "products", "1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "/static/uploads/products/1700000000000.png", bucket.PublicURL("products/1700000000000.png"))

	require.NoError(t, bucket.Remove(context.Background(), "products/1700000000000.png"))
	_, err = os.Stat(filepath.Join(dir, "products", "1700000000000.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalBucketRejectsOverwriteWithoutUpsert(t *testing.T) {
	bucket := NewLocalBucket(t.TempDir(), "/media")
	ctx := context.Background()

	require.NoError(t, bucket.Upload(ctx, "articles/a.jpg", strings.NewReader("one"), 3, UploadOptions{}))
	err := bucket.Upload(ctx, "articles/a.jpg", strings.NewReader("two"), 3, UploadOptions{})
	assert.ErrorIs(t, err, ErrObjectExists)

	require.NoError(t, bucket.Upload(ctx, "articles/a.jpg", strings.NewReader("three"), 5, UploadOptions{Upsert: true}))
	data, err := os.ReadFile(filepath.Join(bucket.Root(), "articles", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}

func TestLocalBucketRemoveMissingIsNotAnError(t *testing.T) {
	bucket := NewLocalBucket(t.TempDir(), "/media")
	assert.NoError(t, bucket.Remove(context.Background(), "testimonials/missing.png"))
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "plain", key: "products/a.png", want: "products/a.png"},
		{name: "leading slash", key: "/about/b.jpg", want: "about/b.jpg"},
		{name: "backslash", key: `portfolios\c.webp`, want: "portfolios/c.webp"},
		{name: "empty", key: "  ", wantErr: true},
		{name: "escape", key: "../etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
