// Package photos manages per-product photo asset directories.
//
// Every owner key (a provisional "tmp-" key while drafting, the real
// product id after commit) maps to one directory under the asset root.
// Files inside are named by zero-based index with a fixed extension, and
// the index order matches the product's photos list order.
package photos

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/logger"

	"github.com/google/uuid"
)

const provisionalPrefix = "tmp-"

// Manager owns the photo asset directory tree and public URL construction.
type Manager struct {
	root    string
	baseURL string
	ext     string
	maxSize int64
}

// NewManager creates a photo asset manager from the photos config section.
func NewManager(cfg config.PhotosConfig) *Manager {
	ext := strings.TrimPrefix(strings.TrimSpace(cfg.Extension), ".")
	if ext == "" {
		ext = "jpg"
	}
	return &Manager{
		root:    cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		ext:     ext,
		maxSize: cfg.MaxSize,
	}
}

// NewProvisionalKey returns a fresh owner key for a draft without a real id.
func NewProvisionalKey() string {
	return provisionalPrefix + uuid.NewString()
}

// IsProvisionalKey reports whether key namespaces uncommitted draft assets.
func IsProvisionalKey(key string) bool {
	return strings.HasPrefix(key, provisionalPrefix)
}

// URL builds the public URL for the indexed photo of an owner key.
func (m *Manager) URL(ownerKey string, index int) string {
	return fmt.Sprintf("%s/%s/%d.%s", m.baseURL, ownerKey, index, m.ext)
}

// Attach appends data as the next zero-based index file under the owner
// key's directory and returns its public URL. Filesystem failures
// propagate so the caller can re-prompt instead of silently dropping the
// photo.
func (m *Manager) Attach(ownerKey string, data []byte) (string, error) {
	if m.maxSize > 0 && int64(len(data)) > m.maxSize {
		return "", fmt.Errorf("photo exceeds max size (%d bytes)", m.maxSize)
	}
	dir := filepath.Join(m.root, ownerKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	index, err := m.nextIndex(dir)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(m.indexPath(dir, index), data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return m.URL(ownerKey, index), nil
}

// Finalize renames the asset directory from the provisional key to the
// real key and rewrites the owner-key segment of every issued URL. A draft
// with zero photos has no directory, so a missing source is a no-op; so is
// a repeated call after the first succeeded.
func (m *Manager) Finalize(provisionalKey, realKey string, urls []string) ([]string, error) {
	src := filepath.Join(m.root, provisionalKey)
	dst := filepath.Join(m.root, realKey)
	if _, err := os.Stat(src); err == nil {
		if err := os.Rename(src, dst); err != nil {
			return nil, fmt.Errorf("finalize photo dir: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat photo dir: %w", err)
	}

	rewritten := make([]string, len(urls))
	for i, u := range urls {
		rewritten[i] = strings.Replace(u, "/"+provisionalKey+"/", "/"+realKey+"/", 1)
	}
	return rewritten, nil
}

// ReplaceAll overwrites the owner key's photo set wholesale: indices
// 0..len-1 are written in place and any stale higher-index files are
// removed, so the directory never serves leftover content.
func (m *Manager) ReplaceAll(ownerKey string, photos [][]byte) ([]string, error) {
	dir := filepath.Join(m.root, ownerKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	urls := make([]string, 0, len(photos))
	for i, data := range photos {
		if m.maxSize > 0 && int64(len(data)) > m.maxSize {
			return nil, fmt.Errorf("photo %d exceeds max size (%d bytes)", i, m.maxSize)
		}
		if err := os.WriteFile(m.indexPath(dir, i), data, 0o644); err != nil {
			return nil, fmt.Errorf("write photo %d: %w", i, err)
		}
		urls = append(urls, m.URL(ownerKey, i))
	}
	for i := len(photos); ; i++ {
		stale := m.indexPath(dir, i)
		if _, err := os.Stat(stale); os.IsNotExist(err) {
			break
		}
		if err := os.Remove(stale); err != nil {
			return nil, fmt.Errorf("remove stale photo %d: %w", i, err)
		}
	}
	return urls, nil
}

// DeleteAll removes the entire asset directory of an owner key. An absent
// directory is not an error.
func (m *Manager) DeleteAll(ownerKey string) error {
	if err := os.RemoveAll(filepath.Join(m.root, ownerKey)); err != nil {
		return fmt.Errorf("delete photo dir: %w", err)
	}
	return nil
}

// Cleanup discards provisional assets of a cancelled draft. Best effort:
// a stray directory costs disk space, not correctness, so failures are
// logged and swallowed.
func (m *Manager) Cleanup(provisionalKey string) {
	if !IsProvisionalKey(provisionalKey) {
		return
	}
	if err := m.DeleteAll(provisionalKey); err != nil {
		logger.Warnw("photo_cleanup_failed", "owner_key", provisionalKey, "error", err)
	}
}

// SweepProvisional reclaims orphaned provisional directories older than
// maxAge and returns how many were removed. Orphans appear when a draft is
// abandoned without an explicit cancel.
func (m *Manager) SweepProvisional(maxAge time.Duration) int {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnw("photo_sweep_read_failed", "dir", m.root, "error", err)
		}
		return 0
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() || !IsProvisionalKey(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := m.DeleteAll(entry.Name()); err != nil {
			logger.Warnw("photo_sweep_remove_failed", "owner_key", entry.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed
}

func (m *Manager) indexPath(dir string, index int) string {
	return filepath.Join(dir, strconv.Itoa(index)+"."+m.ext)
}

// nextIndex counts existing index files; indices are contiguous from 0.
func (m *Manager) nextIndex(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read photo dir: %w", err)
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), "."+m.ext) {
			count++
		}
	}
	return count, nil
}
