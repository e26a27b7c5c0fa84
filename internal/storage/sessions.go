// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/ragdeck-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("session not found")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore persists chat transcripts in a local SQLite database.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens (or creates) the session database at path.
func NewSessionStore(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', ?)`,
		fmt.Sprintf("%d", SchemaVersion),
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return &SessionStore{db: db}, nil
}

// Close releases the database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// Save writes the transcript and all its turns, replacing any previous
// version of the same session.
func (s *SessionStore) Save(t *model.Transcript) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sessions (id, title, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		t.ID, t.GetTitle(), t.CreatedAt.Unix(), t.UpdatedAt.Unix(),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	// Turns are append-only in memory; replacing them wholesale keeps
	// the on-disk order authoritative.
	if _, err := tx.Exec(`DELETE FROM turns WHERE session_id = ?`, t.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO turns (id, session_id, position, speaker, text, created_at, sources)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer stmt.Close()

	for i, turn := range t.Turns {
		var sources any
		if len(turn.Sources) > 0 {
			data, err := json.Marshal(turn.Sources)
			if err != nil {
				return fmt.Errorf("failed to encode sources: %w", err)
			}
			sources = string(data)
		}
		if _, err := stmt.Exec(
			turn.ID, t.ID, i, string(turn.Speaker), turn.Text, turn.Timestamp.Unix(), sources,
		); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Load reads a session by ID.
func (s *SessionStore) Load(id string) (*model.Transcript, error) {
	t := &model.Transcript{ID: id}

	var created, updated int64
	err := s.db.QueryRow(
		`SELECT title, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&t.Title, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	t.CreatedAt = time.Unix(created, 0)
	t.UpdatedAt = time.Unix(updated, 0)

	rows, err := s.db.Query(
		`SELECT id, speaker, text, created_at, sources
		 FROM turns WHERE session_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn model.Turn
		var speaker string
		var ts int64
		var sources sql.NullString
		if err := rows.Scan(&turn.ID, &speaker, &turn.Text, &ts, &sources); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		turn.Speaker = model.Speaker(speaker)
		turn.Timestamp = time.Unix(ts, 0)
		if sources.Valid && sources.String != "" {
			if err := json.Unmarshal([]byte(sources.String), &turn.Sources); err != nil {
				return nil, fmt.Errorf("failed to decode sources: %w", err)
			}
		}
		t.Turns = append(t.Turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return t, nil
}

// List returns session metadata, most recently updated first.
func (s *SessionStore) List() ([]model.TranscriptMeta, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.title, s.created_at, s.updated_at,
		        (SELECT COUNT(*) FROM turns WHERE session_id = s.id)
		 FROM sessions s ORDER BY s.updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var metas []model.TranscriptMeta
	for rows.Next() {
		var m model.TranscriptMeta
		var created, updated int64
		if err := rows.Scan(&m.ID, &m.Title, &created, &updated, &m.TurnCount); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		m.CreatedAt = time.Unix(created, 0)
		m.UpdatedAt = time.Unix(updated, 0)
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return metas, nil
}

// Delete removes a session and its turns.
func (s *SessionStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes all sessions.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}
