package content

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/proshopcms/internal/storage"
)

type entry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string `gorm:"not null"`
	Slug      string `gorm:"index"`
	Category  string
	ImageURL  string
	ImagePath string
	Order     int `gorm:"column:sort_order"`
}

func (e entry) PrimaryKey() uint { return e.ID }

func entryKind() *Kind[entry] {
	return &Kind[entry]{
		Name:         "entries",
		Folder:       "entries",
		TitleField:   "title",
		DefaultOrder: []Order{Asc("sort_order")},
		Columns:      []string{"title", "slug", "category", "image_url", "image_path", "sort_order"},
		Title:        func(e *entry) string { return e.Title },
		Slug:         func(e *entry) *string { return &e.Slug },
		Category:     func(e *entry) string { return e.Category },
		Image:        func(e *entry) (*string, *string) { return &e.ImageURL, &e.ImagePath },
		NewDraft: func(dc DraftContext) entry {
			return entry{Category: "A", Order: int(dc.Count) + 1}
		},
	}
}

var dbCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:content-%d-%d?mode=memory&cache=shared", time.Now().UnixNano(), dbCounter.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	return gdb
}

// journal records calls across the bucket and store spies in order.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(call string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, call)
}

func (j *journal) snapshot() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

type spyBucket struct {
	log       *journal
	uploadErr error
	removeErr error

	mu      sync.Mutex
	options []storage.UploadOptions
}

func (b *spyBucket) Upload(_ context.Context, key string, body io.Reader, _ int64, opts storage.UploadOptions) error {
	_, _ = io.Copy(io.Discard, body)
	b.mu.Lock()
	b.options = append(b.options, opts)
	b.mu.Unlock()
	b.log.add("upload:" + key)
	return b.uploadErr
}

func (b *spyBucket) PublicURL(key string) string {
	return "https://cdn.example/storage/v1/object/public/images/" + key
}

func (b *spyBucket) Remove(_ context.Context, keys ...string) error {
	for _, key := range keys {
		b.log.add("remove:" + key)
	}
	return b.removeErr
}

// spyStore wraps a real store and records writes.
type spyStore struct {
	Store[entry]
	log      *journal
	writeErr error
	block    chan struct{}
}

func (s *spyStore) Create(ctx context.Context, draft *entry) (*entry, error) {
	s.log.add("create")
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	return s.Store.Create(ctx, draft)
}

func (s *spyStore) Update(ctx context.Context, id uint, patch *entry, fields []string) (*entry, error) {
	s.log.add("update")
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	return s.Store.Update(ctx, id, patch, fields)
}

func (s *spyStore) Delete(ctx context.Context, id uint) error {
	s.log.add("delete")
	return s.Store.Delete(ctx, id)
}

func (s *spyStore) wait(ctx context.Context) error {
	if s.block == nil {
		return nil
	}
	select {
	case <-s.block:
		return nil
	case <-ctx.Done():
		return wrapStoreError("entries.write", ctx.Err())
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func stagePNG(t *testing.T) *PendingUpload {
	t.Helper()
	upload, err := Stage("photo.png", bytes.NewReader(pngBytes(t, 4, 3)), 1<<20)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	return upload
}

type fixture struct {
	db     *gorm.DB
	repo   *Repository[entry]
	store  *spyStore
	bucket *spyBucket
	media  *MediaManager
	log    *journal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := newTestDB(t)
	log := &journal{}
	repo := NewRepository(gdb, entryKind())
	bucket := &spyBucket{log: log}
	return &fixture{
		db:     gdb,
		repo:   repo,
		store:  &spyStore{Store: repo, log: log},
		bucket: bucket,
		media:  NewMediaManager(bucket),
		log:    log,
	}
}

func (f *fixture) seed(t *testing.T, items ...entry) []entry {
	t.Helper()
	for i := range items {
		items[i].Slug = Slugify(items[i].Title)
		if err := f.db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return items
}
