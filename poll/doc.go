// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll validates, creates, reads and deletes polls.

# Validation

Validate trims the question and options before checking them:

	err := poll.Validate("Favorite color?", []string{"Red", "Blue"})

It returns one of ErrEmptyQuestion, ErrInvalidOptionCount, ErrEmptyOption or
ErrDuplicateOption. All of them match ErrValidation:

	if errors.Is(err, poll.ErrValidation) { ... }

Options are compared case-insensitively, so "Red" and " red " collide.

# Repository

	repo := poll.NewRepository(store)
	p, err := repo.Create(ctx, question, options)
	list, err := repo.List(ctx)
	p, err := repo.Get(ctx, id)
	res, err := repo.Results(ctx, id, voterIdentity)
	err := repo.Delete(ctx, id)

List is ordered by created_at, then id. Results adds per-option percentages
rounded to one decimal, has_voted, and user_vote for the given identity.

# Serialized Updates

Every write is a full load-modify-save cycle run by Update under a single
mutex, so two writers never save over each other:

	err := repo.Update(ctx, func(snap *store.Snapshot) error {
		// mutate snap; return an error to abort without saving
		return nil
	})

The vote ledger uses the same Update to record votes. List, Get and Results
take the read side of the same lock, so they never see a half-finished save.

# Sample Poll

SeedIfEmpty creates "What is your favorite color?" when the store has no
polls, matching what a fresh install shows.
*/
package poll
