// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polls and vote records.

# Contract

Every implementation of Store loads and saves the whole state at once:

	snap, err := s.Load(ctx)
	snap.Polls[id] = poll
	err = s.Save(ctx, snap)

Load returns empty collections when nothing was saved yet. When one of the
two documents cannot be decoded it is logged and replaced with an empty
collection; the other document still loads. This trades the unreadable data
for availability, so keep backups of the data directory.

Save either writes both documents or returns an error wrapping
ErrWriteFailure. Callers must not report success after a failed Save.

# Backends

  - FileStore: data/polls.json and data/votes.json, replaced atomically via
    renameio once both files are staged
  - SQLStore: rows "polls" and "votes" in the document table (SQLite or
    PostgreSQL, see package db), upserted in one transaction
  - MemoryStore: in-process, with FailSaves/FailLoads for tests

# Errors

	ErrReadFailure  - backing storage could not be read
	ErrWriteFailure - backing storage could not be written
	ErrCorrupt      - logged cause when a document is discarded

Concurrency control is the caller's job: a Store does not serialize
load-modify-save cycles. See poll.Repository.Update.
*/
package store
