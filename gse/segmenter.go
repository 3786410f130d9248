// Package gse implements tshiau.Segmenter using the gse tokenizer.
package gse

import (
	"log/slog"
	"strings"

	"github.com/go-ego/gse"
	"github.com/go-ego/gse/hmm/pos"
	"github.com/wrlin/tshiau"
)

// Mode selects the segmentation strategy.
type Mode string

const (
	// ModeAccurate uses HMM segmentation with part-of-speech tagging and
	// drops interjections and modal particles from the lookup set.
	ModeAccurate Mode = "accurate"
	// ModeFull emits every dictionary word found in the text.
	ModeFull Mode = "full"
	// ModeSearch additionally emits sub-words of long words.
	ModeSearch Mode = "search"
)

// Part-of-speech tags excluded from lookups in accurate mode:
// 'e' = interjection (嘆詞), 'y' = modal particle (語氣詞).
var posToDrop = map[string]struct{}{
	"e": {},
	"y": {},
}

// Ensure Segmenter implements tshiau.Segmenter at compile time.
var _ tshiau.Segmenter = (*Segmenter)(nil)

// Segmenter splits Simplified Chinese text into lookup units.
type Segmenter struct {
	seg    gse.Segmenter
	posSeg pos.Segmenter
	mode   Mode
	logger *slog.Logger
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithLogger sets the logger used to report dropped tokens.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Segmenter) {
		s.logger = logger
	}
}

// NewSegmenter creates a Segmenter for the given mode. Loading the
// dictionary is expensive; create one Segmenter per process.
func NewSegmenter(mode Mode, opts ...Option) (*Segmenter, error) {
	switch mode {
	case ModeAccurate, ModeFull, ModeSearch:
	default:
		return nil, tshiau.Errorf(tshiau.EINVALID, "unknown split mode %q", mode)
	}

	s := &Segmenter{
		mode:   mode,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.seg.LoadDict(); err != nil {
		return nil, err
	}
	s.posSeg.WithGse(s.seg)
	return s, nil
}

// Segment splits text into ordered units. Whitespace-only tokens are
// skipped; in accurate mode interjections and modal particles are dropped.
// Positions number the kept tokens in sentence order.
func (s *Segmenter) Segment(text string) ([]tshiau.Unit, error) {
	var units []tshiau.Unit
	var dropped []string

	appendToken := func(token string) {
		token = strings.TrimSpace(token)
		if token == "" {
			return
		}
		units = append(units, tshiau.Unit{Key: token, Position: len(units)})
	}

	switch s.mode {
	case ModeAccurate:
		for _, t := range s.posSeg.Cut(text, true) {
			token := strings.TrimSpace(t.Text)
			if token == "" {
				continue
			}
			if _, drop := posToDrop[t.Pos]; drop {
				dropped = append(dropped, token+" ("+t.Pos+")")
				continue
			}
			appendToken(token)
		}
	case ModeFull:
		for _, token := range s.seg.CutAll(text) {
			appendToken(token)
		}
	case ModeSearch:
		for _, token := range s.seg.CutSearch(text, true) {
			appendToken(token)
		}
	}

	if len(dropped) > 0 {
		s.logger.Info("dropped interjections and particles",
			"count", len(dropped),
			"tokens", strings.Join(dropped, ", "),
		)
	}

	return units, nil
}
