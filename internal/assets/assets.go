// Package assets fetches panorama images from local roots or over HTTP.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/engine/panorama"
	"github.com/Faultbox/panosphere/internal/engine/texture"
	"github.com/Faultbox/panosphere/internal/logger"
)

// ErrNotFound is returned when a reference matches no root.
var ErrNotFound = errors.New("file not found")

const userAgent = "panosphere/1.0"

// Options configures a Manager.
type Options struct {
	// Roots are searched in order for relative references.
	Roots []string
	// CacheBytes is the raw byte cache budget. Zero disables caching.
	CacheBytes int64
	// Client is used for http and https references. Nil means a client with a
	// 60 second timeout.
	Client *http.Client
	Log    *zap.Logger
}

// Manager loads images by reference. References starting with http:// or
// https:// are downloaded; anything else is a file path, absolute or relative
// to one of the roots.
type Manager struct {
	roots  []string
	client *http.Client
	cache  *Cache
	log    *zap.Logger
}

var _ panorama.ImageLoader = (*Manager)(nil)

// NewManager creates a new asset manager.
func NewManager(opts Options) *Manager {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return &Manager{
		roots:  roots,
		client: client,
		cache:  NewCache(opts.CacheBytes),
		log:    logger.Or(opts.Log).Named("assets"),
	}
}

// Cache returns the raw byte cache.
func (m *Manager) Cache() *Cache { return m.cache }

// LoadImage fetches and decodes ref. Progress is reported in [0,1] while bytes
// arrive and always ends with 1 on success.
func (m *Manager) LoadImage(ctx context.Context, ref string, onProgress func(float64)) (image.Image, error) {
	data, err := m.Load(ctx, ref, onProgress)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(ref, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ref, err)
	}
	return img, nil
}

// Load returns the raw bytes of ref, from cache when possible.
func (m *Manager) Load(ctx context.Context, ref string, onProgress func(float64)) ([]byte, error) {
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	key, remote := ref, isRemote(ref)
	if !remote {
		path, err := m.Resolve(ref)
		if err != nil {
			return nil, err
		}
		key = path
	}

	if data, ok := m.cache.Get(key); ok {
		onProgress(1)
		return data, nil
	}

	var data []byte
	var err error
	if remote {
		data, err = m.fetch(ctx, ref, onProgress)
	} else {
		data, err = m.readFile(ctx, key, onProgress)
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(key, data)
	m.log.Debug("asset loaded", zap.String("ref", ref), zap.Int("bytes", len(data)))
	onProgress(1)
	return data, nil
}

// Resolve maps a local reference to an existing file. Absolute paths are used
// as-is; relative ones are tried against each root in order.
func (m *Manager) Resolve(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if filepath.IsAbs(ref) {
		if _, err := os.Stat(ref); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return ref, nil
	}
	for _, root := range m.roots {
		path := filepath.Join(root, filepath.FromSlash(ref))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

func (m *Manager) readFile(ctx context.Context, path string, onProgress func(float64)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	data, err := readAll(ctx, f, size, onProgress)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (m *Manager) fetch(ctx context.Context, url string, onProgress func(float64)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := readAll(ctx, resp.Body, resp.ContentLength, onProgress)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	return data, nil
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// progressReader reports the fraction of total read so far. Unknown totals
// report nothing until the caller reports completion.
type progressReader struct {
	ctx        context.Context
	r          io.Reader
	read       int64
	total      int64
	onProgress func(float64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if n > 0 && p.total > 0 {
		p.onProgress(min(float64(p.read)/float64(p.total), 1))
	}
	return n, err
}

func readAll(ctx context.Context, r io.Reader, total int64, onProgress func(float64)) ([]byte, error) {
	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(total))
	}
	pr := &progressReader{ctx: ctx, r: r, total: total, onProgress: onProgress}
	if _, err := io.Copy(&buf, pr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
