package models

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"
)

// Option count bounds for a poll
const (
	MinOptions = 2
	MaxOptions = 5
)

// NoChoice is the option index recorded for voters whose choice is unknown.
// Records written before per-voter choices were tracked decode to it.
const NoChoice = -1

// Request types

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// OptionIndex is a pointer so a missing field can be told apart from 0
type VoteRequest struct {
	OptionIndex *int `json:"option_index"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type CreatePollResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
	Success   bool      `json:"success"`
}

type VoteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TotalVotes int    `json:"total_votes"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	Votes     []int     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// Layouts accepted for created_at. Older data files carry timestamps
// without a UTC offset; those are read as UTC.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON decodes a poll, tolerating created_at values without an
// offset. An unparseable created_at leaves CreatedAt zero rather than
// failing the surrounding document.
func (p *Poll) UnmarshalJSON(data []byte) error {
	type plain Poll
	var aux struct {
		plain
		CreatedAt string `json:"created_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Poll(aux.plain)
	p.CreatedAt = parseCreatedAt(aux.CreatedAt)
	return nil
}

func parseCreatedAt(s string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TotalVotes sums the per-option counts.
func (p Poll) TotalVotes() int {
	total := 0
	for _, v := range p.Votes {
		total += v
	}
	return total
}

// Clone returns a copy that shares no slices with p.
func (p Poll) Clone() Poll {
	p.Options = slices.Clone(p.Options)
	p.Votes = slices.Clone(p.Votes)
	return p
}

type PollSummary struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Options    []string  `json:"options"`
	CreatedAt  time.Time `json:"created_at"`
	TotalVotes int       `json:"total_votes"`
}

type OptionResult struct {
	Option     string  `json:"option"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// PollResults is a poll as seen by one voter.
// UserVote is nil when the voter has not voted or their choice is unknown.
type PollResults struct {
	ID         string         `json:"id"`
	Question   string         `json:"question"`
	Options    []string       `json:"options"`
	Votes      []int          `json:"votes"`
	CreatedAt  time.Time      `json:"created_at"`
	TotalVotes int            `json:"total_votes"`
	HasVoted   bool           `json:"has_voted"`
	UserVote   *int           `json:"user_vote"`
	Results    []OptionResult `json:"results"`
}

type VoteReceipt struct {
	PollID      string `json:"poll_id"`
	OptionIndex int    `json:"option_index"`
	TotalVotes  int    `json:"total_votes"`
}

// VoteRecord maps voter identity -> chosen option index for a single poll.
// An identity appears at most once.
type VoteRecord map[string]int

// Has reports whether identity already voted.
func (v VoteRecord) Has(identity string) bool {
	_, ok := v[identity]
	return ok
}

// Clone returns an independent copy of the record.
func (v VoteRecord) Clone() VoteRecord {
	if v == nil {
		return nil
	}
	out := make(VoteRecord, len(v))
	for k, idx := range v {
		out[k] = idx
	}
	return out
}

// Ballot is the persisted form of one VoteRecord entry
type Ballot struct {
	Voter       string `json:"voter"`
	OptionIndex int    `json:"option_index"`
}

// MarshalJSON writes the record as an array of ballots sorted by voter.
func (v VoteRecord) MarshalJSON() ([]byte, error) {
	voters := make([]string, 0, len(v))
	for voter := range v {
		voters = append(voters, voter)
	}
	slices.Sort(voters)

	ballots := make([]Ballot, 0, len(voters))
	for _, voter := range voters {
		ballots = append(ballots, Ballot{Voter: voter, OptionIndex: v[voter]})
	}
	return json.Marshal(ballots)
}

// UnmarshalJSON accepts an array whose entries are either ballots or bare
// identity strings. Bare identities decode with NoChoice.
func (v *VoteRecord) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	record := make(VoteRecord, len(entries))
	for _, raw := range entries {
		var b Ballot
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '"' {
			b.OptionIndex = NoChoice
			if err := json.Unmarshal(trimmed, &b.Voter); err != nil {
				return err
			}
		} else if err := json.Unmarshal(raw, &b); err != nil {
			return err
		}
		// first entry wins
		if _, seen := record[b.Voter]; !seen {
			record[b.Voter] = b.OptionIndex
		}
	}

	*v = record
	return nil
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
