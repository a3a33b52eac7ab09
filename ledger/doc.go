// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger records votes with one vote per voter identity per poll.

# Casting a Vote

	l := ledger.New(repo)
	receipt, err := l.CastVote(ctx, pollID, optionIndex, identity)

CastVote runs inside poll.Repository.Update:

 1. load polls and vote records
 2. ErrPollNotFound if the poll does not exist
 3. ErrInvalidOption unless 0 <= optionIndex < len(options)
 4. ErrAlreadyVoted if identity is already in the poll's vote record
 5. increment the option's count and record identity → optionIndex
 6. save both collections in one write

If the save fails the error wraps store.ErrWriteFailure and nothing is
recorded; the voter may try again. The receipt carries the poll's new total.

# Identities

Identities come from auth.IdentityResolver. The ledger treats them as
opaque strings and only compares them for equality.
*/
package ledger
