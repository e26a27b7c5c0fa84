// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/ragdeck-tui/internal/model"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	tr := model.NewTranscript()
	tr.AppendUser("what is in the quarterly report?")
	tr.AppendBot("Revenue grew 12%.", []string{"q3.pdf", "notes.md"})

	if err := store.Save(tr); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(tr.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("Len = %d, want 2", loaded.Len())
	}
	if loaded.Turns[0].Speaker != model.SpeakerUser || loaded.Turns[1].Speaker != model.SpeakerBot {
		t.Errorf("speakers = %v, %v", loaded.Turns[0].Speaker, loaded.Turns[1].Speaker)
	}
	if loaded.Turns[1].Text != "Revenue grew 12%." {
		t.Errorf("bot text = %q", loaded.Turns[1].Text)
	}
	if len(loaded.Turns[1].Sources) != 2 || loaded.Turns[1].Sources[0] != "q3.pdf" {
		t.Errorf("sources = %v", loaded.Turns[1].Sources)
	}
	if loaded.Turns[0].Sources != nil {
		t.Errorf("user turn sources = %v, want nil", loaded.Turns[0].Sources)
	}
	if loaded.GetTitle() != tr.GetTitle() {
		t.Errorf("title = %q, want %q", loaded.GetTitle(), tr.GetTitle())
	}
}

func TestSave_ReplacesPreviousVersion(t *testing.T) {
	store := newTestStore(t)

	tr := model.NewTranscript()
	tr.AppendUser("first question")
	if err := store.Save(tr); err != nil {
		t.Fatal(err)
	}

	tr.AppendBot("first answer", nil)
	tr.AppendUser("second question")
	if err := store.Save(tr); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(tr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 3 {
		t.Errorf("Len = %d, want 3 after re-save", loaded.Len())
	}
}

func TestLoad_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("sess_missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestList_OrderedByUpdate(t *testing.T) {
	store := newTestStore(t)

	older := model.NewTranscript()
	older.AppendUser("older session")
	older.UpdatedAt = older.UpdatedAt.Add(-time.Minute)
	if err := store.Save(older); err != nil {
		t.Fatal(err)
	}

	newer := model.NewTranscript()
	newer.AppendUser("newer session")
	newer.UpdatedAt = newer.UpdatedAt.Add(time.Minute)
	if err := store.Save(newer); err != nil {
		t.Fatal(err)
	}

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len = %d, want 2", len(metas))
	}
	if metas[0].ID != newer.ID {
		t.Errorf("metas[0] = %s, want the most recently updated session first", metas[0].ID)
	}
	if metas[0].TurnCount != 1 {
		t.Errorf("TurnCount = %d, want 1", metas[0].TurnCount)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	tr := model.NewTranscript()
	tr.AppendUser("to be deleted")
	if err := store.Save(tr); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(tr.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(tr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(tr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		tr := model.NewTranscript()
		tr.AppendUser("session")
		if err := store.Save(tr); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	metas, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 0 {
		t.Errorf("len after Clear = %d, want 0", len(metas))
	}
}
