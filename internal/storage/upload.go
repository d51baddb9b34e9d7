package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"auction-marketplace/internal/metrics"

	"github.com/gosimple/slug"
	"github.com/samber/lo"
)

// Upload kinds double as the top-level key prefix
const (
	KindPublic    = "public"
	KindDocuments = "documents"
)

// DefaultMaxUploadBytes caps a single uploaded file
const DefaultMaxUploadBytes int64 = 10 << 20

var (
	ErrUnknownKind     = errors.New("unknown upload kind")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var secureImageTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/webp": "webp",
}

// allowedTypes maps each kind to the MIME types it accepts and their extension
var allowedTypes = map[string]map[string]string{
	KindPublic:    secureImageTypes,
	KindDocuments: lo.Assign(secureImageTypes, map[string]string{"application/pdf": "pdf"}),
}

// Putter stores an object and returns where it can be fetched
type Putter interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// Uploader validates incoming files and stores them under the kind's prefix
type Uploader struct {
	store    Putter
	maxBytes int64
	now      func() time.Time
}

// NewUploader creates an Uploader. A non-positive maxBytes uses DefaultMaxUploadBytes.
func NewUploader(store Putter, maxBytes int64) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Uploader{store: store, maxBytes: maxBytes, now: time.Now}
}

// Upload reads r, checks its sniffed content type against kind and stores it.
// Returns the public URL of the stored object.
func (u *Uploader) Upload(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	allowed, ok := allowedTypes[kind]
	if !ok {
		return "", fmt.Errorf("storage: %w - %q", ErrUnknownKind, kind)
	}

	body, err := io.ReadAll(NewMaxSizeReader(r, u.maxBytes))
	if err != nil {
		return "", fmt.Errorf("storage: failed to read %s: %w", filename, err)
	}

	mimeType := http.DetectContentType(body)
	ext, ok := allowed[mimeType]
	if !ok {
		return "", fmt.Errorf("storage: %w - %s", ErrUnsupportedType, mimeType)
	}

	url, err := u.store.Put(ctx, ObjectKey(kind, filename, ext, u.now()), mimeType, body)
	if err != nil {
		return "", err
	}
	metrics.Uploads.WithLabelValues(kind).Inc()
	return url, nil
}

// ObjectKey builds {kind}/{unixmillis}_{slug}.{ext}
func ObjectKey(kind, filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s/%d_%s.%s", kind, now.UnixMilli(), name, ext)
}
