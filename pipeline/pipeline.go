// Package pipeline orchestrates the two-tier dictionary resolution:
// segment the input, fetch and resolve word-level entries, fetch and
// resolve character-level fallbacks for words without an entry, and
// assemble the ordered output document.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wrlin/tshiau"
)

// Runner drives one invocation of the pipeline. All collaborators are
// injected; the zero Logger discards.
type Runner struct {
	Normalizer tshiau.Normalizer
	Segmenter  tshiau.Segmenter
	Fetcher    tshiau.Fetcher
	Renderer   tshiau.Renderer
	Prompt     string
	Logger     *slog.Logger
}

// Run executes the pipeline once: normalize, segment, fetch and resolve
// units, fetch and resolve fallback characters, assemble. The stages are
// strictly sequential and single-pass; there is no third tier and no retry
// of the whole pipeline. Per-key failures are contained in the document;
// only empty input, segmentation failure, and total dictionary
// unreachability abort the run.
func (r *Runner) Run(ctx context.Context, text string) (*tshiau.Document, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, tshiau.Errorf(tshiau.EINVALID, "no input text provided")
	}

	units, err := r.segment(text)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, tshiau.Errorf(tshiau.EINVALID, "input produced no lookup units")
	}
	logger.Info("segmented input", "units", len(units))

	// Unit round.
	keys := tshiau.DistinctKeys(units)
	outcomes, err := r.Fetcher.FetchAll(ctx, keys)
	if err != nil {
		return nil, err
	}
	if allTransportErrors(keys, outcomes) {
		return nil, tshiau.Errorf(tshiau.EUNAVAILABLE, "dictionary unreachable: all %d lookups failed", len(keys))
	}

	unitRes, err := Resolve(keys, outcomes, r.Renderer, true)
	if err != nil {
		return nil, err
	}

	// Fallback round. Never recurses further: single characters that are
	// not found stay terminally absent.
	fallbackEntries := map[string]tshiau.ResolvedEntry{}
	if chars := unitRes.FallbackChars(); len(chars) > 0 {
		logger.Info("falling back to character lookups",
			"words", len(unitRes.Fallback),
			"characters", len(chars),
		)

		charOutcomes, err := r.Fetcher.FetchAll(ctx, chars)
		if err != nil {
			return nil, err
		}
		charRes, err := Resolve(chars, charOutcomes, r.Renderer, false)
		if err != nil {
			return nil, err
		}
		fallbackEntries = charRes.Entries
	}

	doc := Assemble(text, units, unitRes.Entries, fallbackEntries)
	doc.Prompt = r.Prompt
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// segment converts the input to Simplified for the tokenizer, segments,
// and converts every token back to Traditional for dictionary lookup.
func (r *Runner) segment(text string) ([]tshiau.Unit, error) {
	simplified, err := r.Normalizer.Normalize(text, tshiau.ToSimplified)
	if err != nil {
		return nil, err
	}

	units, err := r.Segmenter.Segment(simplified)
	if err != nil {
		return nil, err
	}

	for i, u := range units {
		key, err := r.Normalizer.Normalize(u.Key, tshiau.ToTraditional)
		if err != nil {
			return nil, err
		}
		units[i].Key = key
	}
	return units, nil
}

func allTransportErrors(keys []string, outcomes map[string]tshiau.FetchOutcome) bool {
	for _, key := range keys {
		if outcome, ok := outcomes[key]; ok && outcome.Status != tshiau.StatusError {
			return false
		}
	}
	return len(keys) > 0
}
