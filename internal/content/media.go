package content

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/proshopcms/internal/metrics"
	"github.com/proshopcms/internal/storage"
)

// MediaRef points at a committed object: its public URL and its key inside the bucket.
type MediaRef struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// IsZero reports whether the reference is empty.
func (r MediaRef) IsZero() bool {
	return strings.TrimSpace(r.URL) == "" && strings.TrimSpace(r.Path) == ""
}

// ObjectPath returns the stored key, deriving it from the URL for rows written before
// keys were stored.
func (r MediaRef) ObjectPath() string {
	if path := strings.TrimSpace(r.Path); path != "" {
		return path
	}
	if strings.HasPrefix(r.URL, "data:") {
		return ""
	}
	return ObjectPathFromURL(r.URL)
}

// ObjectPathFromURL keeps the last two "/"-separated segments of a public URL
// (folder and file name).
func ObjectPathFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) > 2 {
		segments = segments[len(segments)-2:]
	}
	return strings.Join(segments, "/")
}

var extensionsByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// PendingUpload is a locally selected image that exists nowhere but in memory.
type PendingUpload struct {
	Filename    string
	Ext         string
	ContentType string
	Size        int64
	Width       int
	Height      int

	data []byte
}

// Preview returns a data URI of the staged bytes. It is only for display and is never persisted.
func (p *PendingUpload) Preview() string {
	return "data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.data)
}

// Stage reads an image selection into memory. Nothing is sent to storage.
func Stage(filename string, r io.Reader, maxBytes int64) (*PendingUpload, error) {
	if r == nil {
		return nil, requiredField("image")
	}
	limit := maxBytes
	if limit <= 0 {
		limit = 8 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &Error{Kind: ErrValidation, Op: "media.stage", Err: err}
	}
	if len(data) == 0 {
		return nil, requiredField("image")
	}
	if int64(len(data)) > limit {
		return nil, &FieldError{Field: "image", Reason: fmt.Sprintf("larger than %d bytes", limit)}
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensionsByType[contentType]
	if !ok {
		return nil, &FieldError{Field: "image", Reason: "not a supported image (" + contentType + ")"}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &FieldError{Field: "image", Reason: "not a decodable image"}
	}

	if original := strings.ToLower(filepath.Ext(filename)); imageExtensions[original] == contentType {
		ext = original
	}

	return &PendingUpload{
		Filename:    filepath.Base(filename),
		Ext:         ext,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       cfg.Width,
		Height:      cfg.Height,
		data:        data,
	}, nil
}

// StageFile stages a multipart file field.
func StageFile(fh *multipart.FileHeader, maxBytes int64) (*PendingUpload, error) {
	if fh == nil {
		return nil, requiredField("image")
	}
	file, err := fh.Open()
	if err != nil {
		return nil, &Error{Kind: ErrValidation, Op: "media.stage", Err: err}
	}
	defer file.Close()
	return Stage(fh.Filename, file, maxBytes)
}

// MediaManager commits staged images to the bucket and releases replaced ones.
type MediaManager struct {
	bucket         storage.Bucket
	cacheControl   string
	releaseTimeout time.Duration
	logger         *zap.Logger
	now            func() time.Time

	wg sync.WaitGroup
}

// MediaOption configures a MediaManager.
type MediaOption func(*MediaManager)

// WithCacheControl sets the Cache-Control stored with every object.
func WithCacheControl(value string) MediaOption {
	return func(m *MediaManager) { m.cacheControl = value }
}

// WithMediaLogger sets the logger used for cleanup failures.
func WithMediaLogger(logger *zap.Logger) MediaOption {
	return func(m *MediaManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMediaClock replaces time.Now when naming objects.
func WithMediaClock(now func() time.Time) MediaOption {
	return func(m *MediaManager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithReleaseTimeout bounds each background removal.
func WithReleaseTimeout(d time.Duration) MediaOption {
	return func(m *MediaManager) {
		if d > 0 {
			m.releaseTimeout = d
		}
	}
}

// NewMediaManager wraps a bucket.
func NewMediaManager(bucket storage.Bucket, opts ...MediaOption) *MediaManager {
	m := &MediaManager{
		bucket:         bucket,
		cacheControl:   "max-age=3600",
		releaseTimeout: 30 * time.Second,
		logger:         zap.NewNop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ObjectName builds "<folder>/<unix millis>-<random>.<ext>".
func (m *MediaManager) ObjectName(folder, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d-%s%s", strings.Trim(folder, "/"), m.now().UnixMilli(), suffix, ext)
}

// Commit uploads a staged image under folder without overwriting and returns its reference.
func (m *MediaManager) Commit(ctx context.Context, upload *PendingUpload, folder string) (MediaRef, error) {
	if upload == nil {
		return MediaRef{}, requiredField("image")
	}

	key, err := storage.CleanKey(m.ObjectName(folder, upload.Ext))
	if err != nil {
		m.count("commit", folder, err)
		return MediaRef{}, &Error{Kind: ErrUpload, Op: "media.commit", Err: err}
	}

	err = m.bucket.Upload(ctx, key, bytes.NewReader(upload.data), upload.Size, storage.UploadOptions{
		ContentType:  upload.ContentType,
		CacheControl: m.cacheControl,
		Upsert:       false,
	})
	m.count("commit", folder, err)
	if err != nil {
		return MediaRef{}, &Error{Kind: ErrUpload, Op: "media.commit", Err: err}
	}
	metrics.MediaUploadBytes.Observe(float64(upload.Size))

	return MediaRef{URL: m.bucket.PublicURL(key), Path: key}, nil
}

// ReleasePrevious removes ref in the background. Failures are logged and never reported to the caller.
func (m *MediaManager) ReleasePrevious(ref MediaRef) {
	key := ref.ObjectPath()
	if key == "" {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.releaseTimeout)
		defer cancel()
		_ = m.remove(ctx, key)
	}()
}

// Remove deletes ref synchronously. The error is returned for logging only.
func (m *MediaManager) Remove(ctx context.Context, ref MediaRef) error {
	key := ref.ObjectPath()
	if key == "" {
		return nil
	}
	return m.remove(ctx, key)
}

// Wait blocks until every background release has finished.
func (m *MediaManager) Wait() {
	m.wg.Wait()
}

func (m *MediaManager) remove(ctx context.Context, key string) error {
	err := m.bucket.Remove(ctx, key)
	m.count("remove", folderOf(key), err)
	if err != nil {
		m.logger.Warn("media cleanup failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (m *MediaManager) count(op, folder string, err error) {
	metrics.MediaOperations.WithLabelValues(op, folder, metrics.Result(err)).Inc()
}

func folderOf(key string) string {
	if idx := strings.Index(key, "/"); idx > 0 {
		return key[:idx]
	}
	return ""
}
