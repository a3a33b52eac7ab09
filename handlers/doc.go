// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quick Poll API.

# Handler Types

Each handler is a struct holding the domain services it needs:

  - PollHandler: List, create and delete polls
  - ResultsHandler: Poll details with live tally for the caller
  - VotingHandler: Vote submission
  - AdminHandler: Admin credential check

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(repo, m)
	resultsHandler := handlers.NewResultsHandler(repo, resolver, m)
	votingHandler := handlers.NewVotingHandler(ledger.New(repo), resolver, m)
	adminHandler := handlers.NewAdminHandler(creds, m)

# Voter Identity

ResultsHandler and VotingHandler take an auth.IdentityResolver. The same
identity that votes is the one that sees has_voted and user_vote on reads.

# Error Mapping

Domain errors become JSON error bodies {"success": false, "error": "..."}:

	poll.ValidationError     → 400 with the validation message
	ledger.ErrInvalidOption  → 400 Invalid option index
	poll.ErrNotFound         → 404 Poll not found
	ledger.ErrAlreadyVoted   → 409 You have already voted on this poll
	auth.ErrInvalidCredentials → 401 Invalid credentials
	store.ErrWriteFailure    → 500 Failed to save data
	store.ErrReadFailure     → 500 Failed to load data

Store failures are logged with their cause; the cause is not sent to the
client.

# Metrics

Handlers count created and deleted polls, vote attempts by result and
store failures on the metrics.Registry they are given.
*/
package handlers
