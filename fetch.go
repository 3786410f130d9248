package tshiau

import "context"

// FetchStatus classifies the outcome of a single dictionary page retrieval.
type FetchStatus int

const (
	// StatusFound means the dictionary returned a page for the key.
	StatusFound FetchStatus = iota
	// StatusNotFound means the dictionary confirmed the key is absent.
	// This is not an error.
	StatusNotFound
	// StatusError means the retrieval failed after exhausting retries
	// (timeout, connection error, unexpected status). Transport failure
	// is not evidence of absence.
	StatusError
)

// FetchOutcome associates a lookup key with either raw page HTML or a
// failure marker. Produced exactly once per (key, round) pair.
type FetchOutcome struct {
	Key    string
	Status FetchStatus
	HTML   string
	Err    error
}

// Fetcher retrieves dictionary pages for a batch of distinct lookup keys.
// Implementations fetch concurrently under a bounded in-flight limit and
// return only after every key has an outcome; one key's failure must not
// cancel or block the others.
type Fetcher interface {
	FetchAll(ctx context.Context, keys []string) (map[string]FetchOutcome, error)
}
