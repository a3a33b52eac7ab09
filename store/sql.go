// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLStore keeps each document as one row of the document table.
// The schema is created by db.CreateSchema.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, payload FROM document WHERE name IN ($1, $2)
	`, PollsDocument, VotesDocument)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: query documents: %w", ErrReadFailure, err)
	}
	defer rows.Close()

	docs := make(map[string][]byte, 2)
	for rows.Next() {
		var name, payload string
		if err := rows.Scan(&name, &payload); err != nil {
			return Snapshot{}, fmt.Errorf("%w: scan document: %w", ErrReadFailure, err)
		}
		docs[name] = []byte(payload)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: read documents: %w", ErrReadFailure, err)
	}

	return decodeSnapshot(docs[PollsDocument], docs[VotesDocument], "database"), nil
}

// Save upserts both documents in one transaction.
func (s *SQLStore) Save(ctx context.Context, snap Snapshot) error {
	polls, votes, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", ErrWriteFailure, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, doc := range []struct {
		name    string
		payload []byte
	}{
		{PollsDocument, polls},
		{VotesDocument, votes},
	} {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO document (name, payload, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE
			SET payload = excluded.payload, updated_at = excluded.updated_at
		`, doc.name, string(doc.payload), now)
		if err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrWriteFailure, doc.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrWriteFailure, err)
	}
	return nil
}
