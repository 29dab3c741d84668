package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/wizard"
)

type noSource struct{}

func (noSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	return nil, os.ErrNotExist
}

func TestNewJanitorAppliesDefaults(t *testing.T) {
	j := NewJanitor(config.SessionConfig{}, nil, nil)
	if j.idleTimeout != defaultIdleTimeout {
		t.Fatalf("idle timeout want %s got %s", defaultIdleTimeout, j.idleTimeout)
	}
	if j.sweepInterval != defaultSweepInterval {
		t.Fatalf("sweep interval want %s got %s", defaultSweepInterval, j.sweepInterval)
	}

	j = NewJanitor(config.SessionConfig{IdleTimeoutMinutes: 5, SweepIntervalMinutes: 2}, nil, nil)
	if j.idleTimeout != 5*time.Minute || j.sweepInterval != 2*time.Minute {
		t.Fatalf("configured durations not applied: %s / %s", j.idleTimeout, j.sweepInterval)
	}
}

func TestSweepRemovesOrphansAndKeepsFreshSessions(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(filepath.Join(dir, "products.json"))
	photoManager := photos.NewManager(config.PhotosConfig{
		Dir:       filepath.Join(dir, "photos"),
		BaseURL:   "http://127.0.0.1:8080/photos",
		Extension: "jpg",
	})
	sessions := wizard.NewManager(store, photoManager, noSource{})

	sessions.StartCreation("fresh")

	orphan := filepath.Join(dir, "photos", photos.NewProvisionalKey())
	if err := os.MkdirAll(orphan, 0o755); err != nil {
		t.Fatalf("create orphan dir failed: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(orphan, old, old); err != nil {
		t.Fatalf("backdate orphan dir failed: %v", err)
	}

	j := NewJanitor(config.SessionConfig{IdleTimeoutMinutes: 60}, sessions, photoManager)
	j.sweep()

	if _, err := os.Stat(orphan); !os.IsNotExist(err) {
		t.Fatalf("orphan provisional dir should be removed")
	}
	if !sessions.Active("fresh") {
		t.Fatalf("fresh session should survive the sweep")
	}
}
