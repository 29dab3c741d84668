package wizard

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/kitestore-next/internal/constants"
	"github.com/kitestore-next/internal/models"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/service"
)

func TestSubmitWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	m := NewManager(env.store, env.photos, env.source)

	_, err := m.Submit(context.Background(), "42", Text{Value: "hello"})
	if !errors.Is(err, service.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestManagerRoutesCreationDialog(t *testing.T) {
	env := newTestEnv(t)
	m := NewManager(env.store, env.photos, env.source)

	m.StartCreation("42")
	if !m.Active("42") {
		t.Fatalf("session must be active after start")
	}

	inputs := []Event{
		Text{Value: "Apex 9m"},
		Text{Value: "45000"},
		Text{Value: "нет"},
		Choice{Key: constants.CategoryKites},
		Text{Value: "нет"},
		Text{Value: "Описание"},
		Text{Value: "Фрирайд"},
		Text{Value: "нет"},
		Done{},
	}
	var last Prompt
	for _, input := range inputs {
		prompt, err := m.Submit(context.Background(), "42", input)
		if err != nil {
			t.Fatalf("submit %T failed: %v", input, err)
		}
		last = prompt
	}
	if !last.Terminal || last.Product == nil || last.Product.ID != 1 {
		t.Fatalf("unexpected final prompt: %+v", last)
	}
	if m.Active("42") {
		t.Fatalf("terminal prompt must close the session")
	}
}

func TestStartingNewDialogCancelsOldDraft(t *testing.T) {
	env := newTestEnv(t)
	m := NewManager(env.store, env.photos, env.source)

	m.StartCreation("42")
	for _, input := range []Event{
		Text{Value: "Draft"},
		Text{Value: "1000"},
		Text{Value: "нет"},
		Choice{Key: constants.CategoryKites},
		Text{Value: "нет"},
		Text{Value: "d"},
		Text{Value: "t"},
		Text{Value: "нет"},
		Photo{Ref: "ref-a"},
	} {
		if _, err := m.Submit(context.Background(), "42", input); err != nil {
			t.Fatalf("submit %T failed: %v", input, err)
		}
	}

	m.StartCreation("42")

	entries, _ := os.ReadDir(env.photosDir)
	for _, entry := range entries {
		if photos.IsProvisionalKey(entry.Name()) {
			t.Fatalf("abandoned draft left provisional dir %q", entry.Name())
		}
	}
	products, err := env.store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("abandoned draft must not commit, got %+v", products)
	}
}

func TestStartEditOnMissingProductOpensNoSession(t *testing.T) {
	env := newTestEnv(t)
	m := NewManager(env.store, env.photos, env.source)

	prompt, err := m.StartEdit("42", 9)
	if err != nil {
		t.Fatalf("start edit failed: %v", err)
	}
	if !prompt.Terminal {
		t.Fatalf("expected terminal prompt, got %+v", prompt)
	}
	if m.Active("42") {
		t.Fatalf("terminal start must not register a session")
	}
}

func TestReapIdleCancelsStaleSessions(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, models.Product{ID: 1, Name: "Apex 9m"})
	m := NewManager(env.store, env.photos, env.source)

	m.StartCreation("stale")
	if _, err := m.StartEdit("fresh", 1); err != nil {
		t.Fatalf("start edit failed: %v", err)
	}
	m.mu.Lock()
	m.sessions["stale"].touched = time.Now().Add(-2 * time.Hour)
	m.mu.Unlock()

	if reaped := m.ReapIdle(time.Hour); reaped != 1 {
		t.Fatalf("expected 1 reaped session, got %d", reaped)
	}
	if m.Active("stale") {
		t.Fatalf("stale session survived the reaper")
	}
	if !m.Active("fresh") {
		t.Fatalf("fresh session was reaped")
	}
}
