// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options
  - VoteRequest: option_index (pointer, so a missing index is detectable)
  - LoginRequest: username, password

# Response Types

Types for JSON responses:

  - CreatePollResponse: id, question, options, created_at, success
  - VoteResponse: success, message, total_votes
  - MessageResponse: success, message
  - PollSummary: one entry of the poll list, with total_votes
  - PollResults: a poll with tally, has_voted and user_vote
  - ErrorResponse: success (always false), error

# Domain Types

  - Poll: question, ordered options, per-option vote counts, created_at
  - VoteRecord: voter identity → chosen option index for one poll
  - VoteReceipt: outcome of a successful vote

# Vote Record Encoding

A VoteRecord is stored as an array of ballots:

	[{"voter": "203.0.113.7|Mozilla/5.0", "option_index": 1}]

Arrays of bare identity strings are also accepted on decode; those voters
are treated as having voted with an unknown choice (NoChoice).

Poll.created_at is RFC 3339 on encode. Decoding also accepts timestamps
without an offset, read as UTC.

# Constants

	MinOptions = 2
	MaxOptions = 5
	NoChoice   = -1
*/
package models
