package pipeline

import "github.com/wrlin/tshiau"

// Resolution holds the per-key resolutions of one fetch round and the keys
// that need character-level fallback.
type Resolution struct {
	Entries map[string]tshiau.ResolvedEntry
	// Fallback lists multi-character keys confirmed absent at this tier,
	// distinct, in the order of the round's key list.
	Fallback []string
}

// Resolve classifies the outcomes of one fetch round. keys fixes the
// iteration order so the fallback list never depends on map order; the
// outcome map itself is keyed, not sequence-indexed, so task completion
// order cannot leak into the result.
//
// A fetched page that renders empty is treated the same as a not-found
// response: the dictionary has no entry. Transport failures are hard
// failures and never enqueue fallback, since failure to reach the
// dictionary is not evidence of absence.
func Resolve(keys []string, outcomes map[string]tshiau.FetchOutcome, renderer tshiau.Renderer, allowFallback bool) (*Resolution, error) {
	res := &Resolution{
		Entries: make(map[string]tshiau.ResolvedEntry, len(keys)),
	}

	for _, key := range keys {
		outcome, ok := outcomes[key]
		if !ok {
			res.Entries[key] = tshiau.ResolvedEntry{Key: key, Status: tshiau.EntryFailed}
			continue
		}

		switch outcome.Status {
		case tshiau.StatusFound:
			content, err := renderer.Render(outcome.HTML)
			if err != nil {
				res.Entries[key] = tshiau.ResolvedEntry{Key: key, Status: tshiau.EntryFailed}
				continue
			}
			if content == "" {
				res.markMissing(key, allowFallback)
				continue
			}
			res.Entries[key] = tshiau.ResolvedEntry{Key: key, Status: tshiau.EntryFound, Content: content}
		case tshiau.StatusNotFound:
			res.markMissing(key, allowFallback)
		case tshiau.StatusError:
			res.Entries[key] = tshiau.ResolvedEntry{Key: key, Status: tshiau.EntryFailed}
		}
	}

	return res, nil
}

// markMissing records an absent entry and enqueues fallback for
// multi-character keys. Single-character keys are terminally absent.
func (r *Resolution) markMissing(key string, allowFallback bool) {
	r.Entries[key] = tshiau.ResolvedEntry{Key: key, Status: tshiau.EntryMissing}
	if allowFallback && tshiau.KeyLen(key) > 1 {
		r.Fallback = append(r.Fallback, key)
	}
}

// FallbackChars returns the ordered union of the characters of the fallback
// keys: character order within a key, key order within the round.
func (r *Resolution) FallbackChars() []string {
	seen := make(map[string]struct{})
	var chars []string
	for _, key := range r.Fallback {
		for _, ch := range tshiau.Decompose(key) {
			if _, ok := seen[ch]; ok {
				continue
			}
			seen[ch] = struct{}{}
			chars = append(chars, ch)
		}
	}
	return chars
}
