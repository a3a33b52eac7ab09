// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileStore keeps each document as <dir>/<name>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(document string) string {
	return filepath.Join(s.dir, document+".json")
}

func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	polls, err := s.readDocument(PollsDocument)
	if err != nil {
		return Snapshot{}, err
	}
	votes, err := s.readDocument(VotesDocument)
	if err != nil {
		return Snapshot{}, err
	}

	return decodeSnapshot(polls, votes, s.dir), nil
}

func (s *FileStore) readDocument(document string) ([]byte, error) {
	data, err := os.ReadFile(s.path(document))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrReadFailure, document, err)
	}
	return data, nil
}

// Save stages both documents in temporary files and only replaces the live
// files once both are fully written. Polls are replaced first; if the votes
// replace then fails, the previous polls document is put back so a failed
// save never leaves polls and votes from different snapshots.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	polls, votes, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %w", ErrWriteFailure, err)
	}

	// nil means polls.json did not exist before this save
	previousPolls, err := s.readDocument(PollsDocument)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	pollsFile, err := s.stage(PollsDocument, polls)
	if err != nil {
		return err
	}
	defer pollsFile.Cleanup()

	votesFile, err := s.stage(VotesDocument, votes)
	if err != nil {
		return err
	}
	defer votesFile.Cleanup()

	if err := pollsFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrWriteFailure, PollsDocument, err)
	}
	if err := votesFile.CloseAtomicallyReplace(); err != nil {
		err = fmt.Errorf("%w: replace %s: %w", ErrWriteFailure, VotesDocument, err)
		if rerr := s.restore(PollsDocument, previousPolls); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}

	return nil
}

// restore puts a document back to its previous contents, removing it when
// it did not exist before.
func (s *FileStore) restore(document string, previous []byte) error {
	path := s.path(document)

	var err error
	if previous == nil {
		err = os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
	} else {
		err = renameio.WriteFile(path, previous, 0o644)
	}
	if err != nil {
		slog.Error("failed to restore document after partial save",
			"dir", s.dir,
			"document", document,
			"error", err,
		)
		return fmt.Errorf("%w: restore %s: %w", ErrWriteFailure, document, err)
	}
	return nil
}

func (s *FileStore) stage(document string, data []byte) (*renameio.PendingFile, error) {
	f, err := renameio.NewPendingFile(s.path(document), renameio.WithPermissions(0o644))
	if err != nil {
		return nil, fmt.Errorf("%w: stage %s: %w", ErrWriteFailure, document, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Cleanup()
		return nil, fmt.Errorf("%w: write %s: %w", ErrWriteFailure, document, err)
	}
	return f, nil
}
