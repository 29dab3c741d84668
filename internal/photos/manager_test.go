package photos

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kitestore-next/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(config.PhotosConfig{
		Dir:       t.TempDir(),
		BaseURL:   "https://shop.example.com/photos/",
		Extension: "jpg",
	})
}

func TestAttachIndexesFromZero(t *testing.T) {
	m := newTestManager(t)

	first, err := m.Attach("tmp-draft", []byte("one"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if first != "https://shop.example.com/photos/tmp-draft/0.jpg" {
		t.Fatalf("unexpected first url: %s", first)
	}

	second, err := m.Attach("tmp-draft", []byte("two"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if second != "https://shop.example.com/photos/tmp-draft/1.jpg" {
		t.Fatalf("unexpected second url: %s", second)
	}

	data, err := os.ReadFile(filepath.Join(m.root, "tmp-draft", "1.jpg"))
	if err != nil {
		t.Fatalf("read photo failed: %v", err)
	}
	if string(data) != "two" {
		t.Fatalf("unexpected photo content: %s", data)
	}
}

func TestAttachRejectsOversizedPhoto(t *testing.T) {
	m := newTestManager(t)
	m.maxSize = 2
	if _, err := m.Attach("tmp-big", []byte("toolarge")); err == nil {
		t.Fatalf("expected oversized photo to be rejected")
	}
}

func TestFinalizeRenamesAndRewritesURLs(t *testing.T) {
	m := newTestManager(t)

	url, err := m.Attach("tmp-abc", []byte("photo"))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	urls, err := m.Finalize("tmp-abc", "7", []string{url})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if urls[0] != "https://shop.example.com/photos/7/0.jpg" {
		t.Fatalf("unexpected rewritten url: %s", urls[0])
	}
	if _, err := os.Stat(filepath.Join(m.root, "7", "0.jpg")); err != nil {
		t.Fatalf("expected renamed photo file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(m.root, "tmp-abc")); !os.IsNotExist(err) {
		t.Fatalf("expected provisional dir to be gone")
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	m := newTestManager(t)

	// Zero attached photos: no directory, no-op.
	urls, err := m.Finalize("tmp-empty", "3", nil)
	if err != nil {
		t.Fatalf("finalize without photos failed: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}

	if _, err := m.Attach("tmp-x", []byte("p")); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if _, err := m.Finalize("tmp-x", "4", nil); err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}
	// Repeat with the same arguments: must not error or duplicate files.
	if _, err := m.Finalize("tmp-x", "4", nil); err != nil {
		t.Fatalf("second finalize failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(m.root, "4"))
	if err != nil {
		t.Fatalf("read finalized dir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one photo file, got %d", len(entries))
	}
}

func TestReplaceAllRemovesStaleIndices(t *testing.T) {
	m := newTestManager(t)

	for _, content := range []string{"a", "b", "c"} {
		if _, err := m.Attach("5", []byte(content)); err != nil {
			t.Fatalf("attach failed: %v", err)
		}
	}

	urls, err := m.ReplaceAll("5", [][]byte{[]byte("new0"), []byte("new1")})
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}

	data, err := os.ReadFile(filepath.Join(m.root, "5", "0.jpg"))
	if err != nil {
		t.Fatalf("read replaced photo failed: %v", err)
	}
	if string(data) != "new0" {
		t.Fatalf("expected overwritten content, got %s", data)
	}
	if _, err := os.Stat(filepath.Join(m.root, "5", "2.jpg")); !os.IsNotExist(err) {
		t.Fatalf("expected stale index 2 to be removed")
	}
}

func TestDeleteAllAbsentIsNotAnError(t *testing.T) {
	m := newTestManager(t)
	if err := m.DeleteAll("nope"); err != nil {
		t.Fatalf("delete of absent dir failed: %v", err)
	}
}

func TestSweepProvisionalRemovesOnlyStaleTmpDirs(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Attach("tmp-old", []byte("p")); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if _, err := m.Attach("tmp-fresh", []byte("p")); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if _, err := m.Attach("12", []byte("p")); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(filepath.Join(m.root, "tmp-old"), old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	removed := m.SweepProvisional(time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 directory removed, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(m.root, "tmp-old")); !os.IsNotExist(err) {
		t.Fatalf("expected stale tmp dir to be removed")
	}
	if _, err := os.Stat(filepath.Join(m.root, "tmp-fresh")); err != nil {
		t.Fatalf("fresh tmp dir should survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(m.root, "12")); err != nil {
		t.Fatalf("committed dir should survive: %v", err)
	}
}

func TestNewProvisionalKey(t *testing.T) {
	key := NewProvisionalKey()
	if !IsProvisionalKey(key) {
		t.Fatalf("expected provisional prefix, got %s", key)
	}
	if key == NewProvisionalKey() {
		t.Fatalf("expected unique provisional keys")
	}
	if IsProvisionalKey("12") {
		t.Fatalf("real id must not look provisional")
	}
}
