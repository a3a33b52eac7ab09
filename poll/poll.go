// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quick-poll/models"
	"github.com/danielhkuo/quick-poll/store"
)

var ErrNotFound = errors.New("poll not found")

// errUnchanged lets an Update callback finish without writing.
var errUnchanged = errors.New("unchanged")

// Repository creates, reads and deletes polls. All writes go through Update,
// which serializes every load-modify-save cycle in the process. Reads share
// the lock so they never observe a save in progress.
type Repository struct {
	store store.Store
	mu    sync.RWMutex

	now   func() time.Time
	newID func() string
}

func NewRepository(s store.Store) *Repository {
	return &Repository{
		store: s,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

// Update loads the current state, applies fn and saves the result, holding
// the repository lock for the whole cycle. If fn fails nothing is saved and
// its error is returned unchanged.
func (r *Repository) Update(ctx context.Context, fn func(snap *store.Snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(&snap); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}

	return r.store.Save(ctx, snap)
}

// load reads the current state without racing an Update.
func (r *Repository) load(ctx context.Context) (store.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Load(ctx)
}

// Create validates and stores a new poll with all counts at zero.
func (r *Repository) Create(ctx context.Context, question string, options []string) (models.Poll, error) {
	if err := Validate(question, options); err != nil {
		return models.Poll{}, err
	}

	trimmed := make([]string, len(options))
	for i, opt := range options {
		trimmed[i] = strings.TrimSpace(opt)
	}

	p := models.Poll{
		ID:        r.newID(),
		Question:  strings.TrimSpace(question),
		Options:   trimmed,
		Votes:     make([]int, len(trimmed)),
		CreatedAt: r.now(),
	}

	err := r.Update(ctx, func(snap *store.Snapshot) error {
		snap.Polls[p.ID] = p.Clone()
		return nil
	})
	if err != nil {
		return models.Poll{}, err
	}

	slog.Info("poll created", "poll_id", p.ID, "options", len(p.Options))
	return p, nil
}

// List returns every poll ordered by creation time, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.PollSummary, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PollSummary, 0, len(snap.Polls))
	for _, p := range snap.Polls {
		summaries = append(summaries, models.PollSummary{
			ID:         p.ID,
			Question:   p.Question,
			Options:    p.Options,
			CreatedAt:  p.CreatedAt,
			TotalVotes: p.TotalVotes(),
		})
	}

	slices.SortFunc(summaries, func(a, b models.PollSummary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return summaries, nil
}

func (r *Repository) Get(ctx context.Context, id string) (models.Poll, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return models.Poll{}, err
	}

	p, ok := snap.Polls[id]
	if !ok {
		return models.Poll{}, ErrNotFound
	}
	return p, nil
}

// Delete removes the poll and its vote record in a single save.
func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.Update(ctx, func(snap *store.Snapshot) error {
		if _, ok := snap.Polls[id]; !ok {
			return ErrNotFound
		}
		delete(snap.Polls, id)
		delete(snap.Votes, id)
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("poll deleted", "poll_id", id)
	return nil
}

// Results returns the poll with its tally as seen by identity.
func (r *Repository) Results(ctx context.Context, id, identity string) (models.PollResults, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return models.PollResults{}, err
	}

	p, ok := snap.Polls[id]
	if !ok {
		return models.PollResults{}, ErrNotFound
	}

	total := p.TotalVotes()
	res := models.PollResults{
		ID:         p.ID,
		Question:   p.Question,
		Options:    p.Options,
		Votes:      p.Votes,
		CreatedAt:  p.CreatedAt,
		TotalVotes: total,
		Results:    make([]models.OptionResult, len(p.Options)),
	}
	for i, opt := range p.Options {
		res.Results[i] = models.OptionResult{
			Option:     opt,
			Votes:      p.Votes[i],
			Percentage: Percentage(p.Votes[i], total),
		}
	}

	if choice, voted := snap.Votes[id][identity]; voted {
		res.HasVoted = true
		if choice >= 0 && choice < len(p.Options) {
			res.UserVote = &choice
		}
	}

	return res, nil
}

// Percentage returns votes/total*100 rounded to one decimal, or 0 when
// nobody has voted.
func Percentage(votes, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*1000) / 10
}

// Sample poll created on first start
var (
	sampleQuestion = "What is your favorite color?"
	sampleOptions  = []string{"Red", "Blue", "Green", "Yellow", "Purple"}
)

// SeedIfEmpty adds the sample poll when the store holds no polls.
func (r *Repository) SeedIfEmpty(ctx context.Context) (bool, error) {
	seeded := false
	err := r.Update(ctx, func(snap *store.Snapshot) error {
		if len(snap.Polls) > 0 {
			return errUnchanged
		}
		p := models.Poll{
			ID:        r.newID(),
			Question:  sampleQuestion,
			Options:   slices.Clone(sampleOptions),
			Votes:     make([]int, len(sampleOptions)),
			CreatedAt: r.now(),
		}
		snap.Polls[p.ID] = p
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		slog.Info("sample poll created")
	}
	return seeded, nil
}
