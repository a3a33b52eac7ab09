// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/quick-poll/auth"
	"github.com/danielhkuo/quick-poll/models"
)

var (
	ErrReadFailure  = errors.New("store read failure")
	ErrWriteFailure = errors.New("store write failure")
	ErrCorrupt      = errors.New("store data corrupt")
)

// Logical document names, used as file stems and table keys
const (
	PollsDocument = "polls"
	VotesDocument = "votes"
)

// Store persists the poll and vote-record collections as a whole.
//
// Load returns empty collections when nothing has been saved yet. A
// collection whose stored data cannot be decoded is logged and replaced by
// an empty one; the other collection is unaffected. Save writes both
// collections or reports ErrWriteFailure.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Snapshot is the full persisted state at one point in time.
type Snapshot struct {
	Polls map[string]models.Poll       // poll id -> poll
	Votes map[string]models.VoteRecord // poll id -> voters
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Polls: make(map[string]models.Poll),
		Votes: make(map[string]models.VoteRecord),
	}
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := NewSnapshot()
	for id, p := range s.Polls {
		out.Polls[id] = p.Clone()
	}
	for id, v := range s.Votes {
		out.Votes[id] = v.Clone()
	}
	return out
}

func encodeSnapshot(snap Snapshot) (polls, votes []byte, err error) {
	if snap.Polls == nil {
		snap.Polls = map[string]models.Poll{}
	}
	if snap.Votes == nil {
		snap.Votes = map[string]models.VoteRecord{}
	}

	polls, err = json.MarshalIndent(snap.Polls, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: encode polls: %w", ErrWriteFailure, err)
	}
	votes, err = json.MarshalIndent(snap.Votes, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: encode votes: %w", ErrWriteFailure, err)
	}
	return polls, votes, nil
}

// decodeSnapshot never fails: undecodable documents become empty collections.
// A nil document means it was never written.
func decodeSnapshot(pollsData, votesData []byte, source string) Snapshot {
	snap := NewSnapshot()

	if len(pollsData) > 0 {
		var polls map[string]models.Poll
		if err := json.Unmarshal(pollsData, &polls); err != nil {
			logCorrupt(source, PollsDocument, err)
		} else {
			for id, p := range polls {
				if err := validStoredPoll(p); err != nil {
					logCorrupt(source, PollsDocument, fmt.Errorf("poll %s: %w", id, err))
					continue
				}
				p.ID = id
				snap.Polls[id] = p
			}
		}
	}

	if len(votesData) > 0 {
		var votes map[string]models.VoteRecord
		if err := json.Unmarshal(votesData, &votes); err != nil {
			logCorrupt(source, VotesDocument, err)
		} else {
			for id, v := range votes {
				if v == nil {
					v = models.VoteRecord{}
				}
				snap.Votes[id] = upgradeLegacyVoters(v)
			}
		}
	}

	return snap
}

// upgradeLegacyVoters rewrites bare "ip:agent" identities from older
// releases into the current identity form so those voters stay blocked.
func upgradeLegacyVoters(v models.VoteRecord) models.VoteRecord {
	for voter, idx := range v {
		if idx != models.NoChoice {
			continue
		}
		upgraded, ok := auth.UpgradeLegacyIdentity(voter)
		if !ok {
			continue
		}
		delete(v, voter)
		if _, exists := v[upgraded]; !exists {
			v[upgraded] = idx
		}
	}
	return v
}

// validStoredPoll rejects entries no create request could have produced,
// including null entries that decode to a zero poll.
func validStoredPoll(p models.Poll) error {
	if strings.TrimSpace(p.Question) == "" {
		return errors.New("missing question")
	}
	if len(p.Options) < models.MinOptions {
		return fmt.Errorf("%d options, need at least %d", len(p.Options), models.MinOptions)
	}
	if len(p.Options) != len(p.Votes) {
		return errors.New("options and votes do not match")
	}
	if p.CreatedAt.IsZero() {
		return errors.New("missing or invalid created_at")
	}
	for _, v := range p.Votes {
		if v < 0 {
			return errors.New("negative vote count")
		}
	}
	return nil
}

func logCorrupt(source, document string, err error) {
	slog.Warn("discarding unreadable store data",
		"source", source,
		"document", document,
		"error", fmt.Errorf("%w: %w", ErrCorrupt, err),
	)
}
