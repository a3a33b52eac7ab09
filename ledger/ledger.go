// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/poll"
	"github.com/danielhkuo/quick-poll/store"
)

var (
	ErrPollNotFound  = poll.ErrNotFound
	ErrInvalidOption = errors.New("invalid option index")
	ErrAlreadyVoted  = errors.New("you have already voted on this poll")
)

// Ledger records votes, at most one per voter identity per poll.
type Ledger struct {
	polls *poll.Repository
}

func New(polls *poll.Repository) *Ledger {
	return &Ledger{polls: polls}
}

// CastVote adds one vote for optionIndex on behalf of identity.
//
// The check and the increment happen inside the repository's serialized
// update, so concurrent votes can neither lose an increment nor accept the
// same identity twice. When saving fails the error wraps
// store.ErrWriteFailure and the vote is not recorded.
func (l *Ledger) CastVote(ctx context.Context, pollID string, optionIndex int, identity string) (models.VoteReceipt, error) {
	var receipt models.VoteReceipt

	err := l.polls.Update(ctx, func(snap *store.Snapshot) error {
		p, ok := snap.Polls[pollID]
		if !ok {
			return ErrPollNotFound
		}

		if optionIndex < 0 || optionIndex >= len(p.Options) {
			return ErrInvalidOption
		}

		record := snap.Votes[pollID]
		if record.Has(identity) {
			return ErrAlreadyVoted
		}
		if record == nil {
			record = make(models.VoteRecord)
		}

		p.Votes = slices.Clone(p.Votes)
		p.Votes[optionIndex]++
		record[identity] = optionIndex

		snap.Polls[pollID] = p
		snap.Votes[pollID] = record

		receipt = models.VoteReceipt{
			PollID:      pollID,
			OptionIndex: optionIndex,
			TotalVotes:  p.TotalVotes(),
		}
		return nil
	})
	if err != nil {
		return models.VoteReceipt{}, err
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_index", optionIndex, "total_votes", receipt.TotalVotes)
	return receipt, nil
}
