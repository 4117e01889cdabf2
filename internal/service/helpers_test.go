package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
	"github.com/proshopcms/internal/storage"
)

type fakeHTTPClient struct {
	handler func(*http.Request) (*http.Response, error)
}

func (f fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if f.handler == nil {
		return nil, errors.New("no handler configured")
	}
	return f.handler(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.DriverSQLite, dsn, true)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newTestMedia(t *testing.T) (*content.MediaManager, *storage.LocalBucket) {
	t.Helper()
	bucket := storage.NewLocalBucket(t.TempDir(), "/static/uploads")
	media := content.NewMediaManager(bucket)
	t.Cleanup(media.Wait)
	return media, bucket
}

func newTestCatalog(t *testing.T) (*Catalog, *gorm.DB) {
	t.Helper()
	gdb := setupServiceTestDB(t)
	media, _ := newTestMedia(t)
	return NewCatalog(gdb, media, CatalogOptions{SaveTimeout: 5 * time.Second}), gdb
}

func stagedPNG(t *testing.T) *content.PendingUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	upload, err := content.Stage("photo.png", &buf, 1<<20)
	if err != nil {
		t.Fatalf("stage png: %v", err)
	}
	return upload
}
