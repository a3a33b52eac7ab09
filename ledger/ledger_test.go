// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quick-poll/poll"
	"github.com/danielhkuo/quick-poll/store"
	"github.com/danielhkuo/quick-poll/testutil"
)

func TestCastVote(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Favorite color?", "Red", "Blue")

	receipt, err := l.CastVote(ctx, p.ID, 1, "alice")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if receipt.TotalVotes != 1 {
		t.Errorf("Expected total 1, got %d", receipt.TotalVotes)
	}
	if receipt.PollID != p.ID || receipt.OptionIndex != 1 {
		t.Errorf("Unexpected receipt: %+v", receipt)
	}

	res, err := repo.Results(ctx, p.ID, "alice")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if res.Votes[0] != 0 || res.Votes[1] != 1 {
		t.Errorf("Expected votes [0 1], got %v", res.Votes)
	}
	if !res.HasVoted || res.UserVote == nil || *res.UserVote != 1 {
		t.Errorf("Expected alice recorded with option 1, got has_voted=%v user_vote=%v", res.HasVoted, res.UserVote)
	}
}

func TestCastVoteTwice(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")

	if _, err := l.CastVote(ctx, p.ID, 0, "alice"); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	// Same identity, any option
	for _, idx := range []int{0, 1} {
		_, err := l.CastVote(ctx, p.ID, idx, "alice")
		if !errors.Is(err, ErrAlreadyVoted) {
			t.Errorf("Expected ErrAlreadyVoted for option %d, got %v", idx, err)
		}
	}

	got, _ := repo.Get(ctx, p.ID)
	if got.TotalVotes() != 1 {
		t.Errorf("Expected 1 total vote, got %d", got.TotalVotes())
	}
}

func TestCastVoteScenario(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Favorite color?", "Red", "Blue")

	if _, err := l.CastVote(ctx, p.ID, 0, "A"); err != nil {
		t.Fatalf("Vote A failed: %v", err)
	}
	if _, err := l.CastVote(ctx, p.ID, 1, "B"); err != nil {
		t.Fatalf("Vote B failed: %v", err)
	}
	if _, err := l.CastVote(ctx, p.ID, 1, "A"); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted for A's second vote, got %v", err)
	}

	res, _ := repo.Results(ctx, p.ID, "C")
	if res.Results[0].Option != "Red" || res.Results[0].Votes != 1 {
		t.Errorf("Expected Red=1, got %+v", res.Results[0])
	}
	if res.Results[1].Option != "Blue" || res.Results[1].Votes != 1 {
		t.Errorf("Expected Blue=1, got %+v", res.Results[1])
	}
	if res.TotalVotes != 2 {
		t.Errorf("Expected total 2, got %d", res.TotalVotes)
	}
}

func TestCastVoteDistinctVoters(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B", "C")

	const n = 25
	for i := 0; i < n; i++ {
		receipt, err := l.CastVote(ctx, p.ID, i%3, fmt.Sprintf("voter-%d", i))
		if err != nil {
			t.Fatalf("Vote %d failed: %v", i, err)
		}
		if receipt.TotalVotes != i+1 {
			t.Errorf("Vote %d: expected total %d, got %d", i, i+1, receipt.TotalVotes)
		}
	}

	got, _ := repo.Get(ctx, p.ID)
	if got.TotalVotes() != n {
		t.Errorf("Expected %d votes, got %d", n, got.TotalVotes())
	}
	if got.Votes[0] != 9 || got.Votes[1] != 8 || got.Votes[2] != 8 {
		t.Errorf("Expected [9 8 8], got %v", got.Votes)
	}
}

func TestCastVoteInvalidOption(t *testing.T) {
	repo, mem := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")
	savesBefore := mem.Saves()

	for _, idx := range []int{-1, 2, 5} {
		_, err := l.CastVote(ctx, p.ID, idx, "alice")
		if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("Option %d: expected ErrInvalidOption, got %v", idx, err)
		}
	}

	if mem.Saves() != savesBefore {
		t.Error("Rejected votes must not write to the store")
	}

	// Rejected attempts do not count as participation
	if _, err := l.CastVote(ctx, p.ID, 0, "alice"); err != nil {
		t.Errorf("Expected valid vote after rejected attempts, got %v", err)
	}
}

func TestCastVoteUnknownPoll(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)

	_, err := l.CastVote(context.Background(), "missing", 0, "alice")
	if !errors.Is(err, ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound, got %v", err)
	}
	if !errors.Is(err, poll.ErrNotFound) {
		t.Errorf("Expected error to match poll.ErrNotFound, got %v", err)
	}
}

func TestCastVoteAfterDelete(t *testing.T) {
	repo, mem := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")
	if _, err := l.CastVote(ctx, p.ID, 0, "alice"); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snap, _ := mem.Load(ctx)
	if _, ok := snap.Votes[p.ID]; ok {
		t.Error("Vote record survived poll deletion")
	}

	_, err := l.CastVote(ctx, p.ID, 0, "bob")
	if !errors.Is(err, ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound after delete, got %v", err)
	}
}

func TestCastVoteStoreFailure(t *testing.T) {
	repo, mem := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")

	mem.FailSaves(errors.New("disk full"))
	_, err := l.CastVote(ctx, p.ID, 0, "alice")
	if !errors.Is(err, store.ErrWriteFailure) {
		t.Fatalf("Expected ErrWriteFailure, got %v", err)
	}

	mem.FailSaves(nil)
	res, err := repo.Results(ctx, p.ID, "alice")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if res.TotalVotes != 0 {
		t.Errorf("Expected failed vote not to be recorded, got %d votes", res.TotalVotes)
	}
	if res.HasVoted {
		t.Error("Expected alice not to be marked as voted after failed save")
	}

	// The voter can try again once storage recovers
	if _, err := l.CastVote(ctx, p.ID, 0, "alice"); err != nil {
		t.Errorf("Expected retry to succeed, got %v", err)
	}
}

func TestCastVoteLoadFailure(t *testing.T) {
	repo, mem := testutil.SetupTestRepository(t)
	l := New(repo)

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")
	mem.FailLoads(errors.New("permission denied"))

	_, err := l.CastVote(context.Background(), p.ID, 0, "alice")
	if !errors.Is(err, store.ErrReadFailure) {
		t.Errorf("Expected ErrReadFailure, got %v", err)
	}
}

func TestConcurrentDistinctVoters(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")

	const numVoters = 50
	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if _, err := l.CastVote(ctx, p.ID, idx%2, fmt.Sprintf("voter-%d", idx)); err != nil {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected all votes to succeed, %d failed", failures.Load())
	}

	got, _ := repo.Get(ctx, p.ID)
	if got.TotalVotes() != numVoters {
		t.Errorf("Expected %d votes (no lost updates), got %d", numVoters, got.TotalVotes())
	}
}

func TestConcurrentSameVoter(t *testing.T) {
	repo, _ := testutil.SetupTestRepository(t)
	l := New(repo)
	ctx := context.Background()

	p := testutil.CreateTestPoll(t, repo, "Q?", "A", "B")

	const attempts = 20
	var wg sync.WaitGroup
	var accepted, rejected atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := l.CastVote(ctx, p.ID, idx%2, "same-voter")
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				rejected.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", accepted.Load())
	}
	if rejected.Load() != attempts-1 {
		t.Errorf("Expected %d rejected votes, got %d", attempts-1, rejected.Load())
	}

	got, _ := repo.Get(ctx, p.ID)
	if got.TotalVotes() != 1 {
		t.Errorf("Expected 1 vote, got %d", got.TotalVotes())
	}
}
