package pipeline_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrlin/tshiau"
	"github.com/wrlin/tshiau/mock"
	"github.com/wrlin/tshiau/pipeline"
)

// identityNormalizer passes text through unchanged in both directions.
func identityNormalizer() *mock.Normalizer {
	return &mock.Normalizer{
		NormalizeFn: func(text string, dir tshiau.Direction) (string, error) {
			return text, nil
		},
	}
}

// fixedSegmenter returns the given keys as ordered units.
func fixedSegmenter(keys ...string) *mock.Segmenter {
	return &mock.Segmenter{
		SegmentFn: func(text string) ([]tshiau.Unit, error) {
			units := make([]tshiau.Unit, len(keys))
			for i, key := range keys {
				units[i] = tshiau.Unit{Key: key, Position: i}
			}
			return units, nil
		},
	}
}

// dictFetcher resolves keys against a fixed dictionary: keys present map to
// found pages, absent keys to not-found. Outcomes are produced by one
// goroutine per key completing in random order, so any ordering leak in the
// pipeline would surface as nondeterministic output.
func dictFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchAllFn: func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
			var mu sync.Mutex
			var wg sync.WaitGroup
			outcomes := make(map[string]tshiau.FetchOutcome, len(keys))
			for _, key := range keys {
				wg.Add(1)
				go func() {
					defer wg.Done()
					time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
					outcome := tshiau.FetchOutcome{Key: key, Status: tshiau.StatusNotFound}
					if html, ok := pages[key]; ok {
						outcome = tshiau.FetchOutcome{Key: key, Status: tshiau.StatusFound, HTML: html}
					}
					mu.Lock()
					outcomes[key] = outcome
					mu.Unlock()
				}()
			}
			wg.Wait()
			return outcomes, nil
		},
	}
}

func newRunner(seg *mock.Segmenter, fetcher *mock.Fetcher) *pipeline.Runner {
	return &pipeline.Runner{
		Normalizer: identityNormalizer(),
		Segmenter:  seg,
		Fetcher:    fetcher,
		Renderer:   passthroughRenderer(),
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("word with an entry has no children", func(t *testing.T) {
		t.Parallel()

		r := newRunner(
			fixedSegmenter("你好"),
			dictFetcher(map[string]string{"你好": "greeting entry"}),
		)

		doc, err := r.Run(context.Background(), "你好")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, tshiau.EntryFound, doc.Sections[0].Entry.Status)
		assert.Equal(t, "greeting entry", doc.Sections[0].Entry.Content)
		assert.Empty(t, doc.Sections[0].Children)
	})

	t.Run("word without an entry falls back to its characters", func(t *testing.T) {
		t.Parallel()

		r := newRunner(
			fixedSegmenter("北平"),
			dictFetcher(map[string]string{
				"北": "north entry",
				"平": "flat entry",
			}),
		)

		doc, err := r.Run(context.Background(), "北平")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		section := doc.Sections[0]
		assert.Equal(t, tshiau.EntryMissing, section.Entry.Status)
		require.Len(t, section.Children, 2)
		assert.Equal(t, "北", section.Children[0].Key)
		assert.Equal(t, "north entry", section.Children[0].Content)
		assert.Equal(t, "平", section.Children[1].Key)
		assert.Equal(t, "flat entry", section.Children[1].Content)
	})

	t.Run("characters without entries stay terminally absent", func(t *testing.T) {
		t.Parallel()

		var rounds [][]string
		var mu sync.Mutex
		inner := dictFetcher(nil)
		fetcher := &mock.Fetcher{
			FetchAllFn: func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
				mu.Lock()
				rounds = append(rounds, keys)
				mu.Unlock()
				return inner.FetchAllFn(ctx, keys)
			},
		}

		r := newRunner(fixedSegmenter("北平"), fetcher)

		doc, err := r.Run(context.Background(), "北平")

		require.NoError(t, err)
		require.Len(t, rounds, 2, "exactly two rounds: units, then characters")
		assert.Equal(t, []string{"北平"}, rounds[0])
		assert.Equal(t, []string{"北", "平"}, rounds[1])
		require.Len(t, doc.Sections[0].Children, 2)
		assert.Equal(t, tshiau.EntryMissing, doc.Sections[0].Children[0].Status)
		assert.Equal(t, tshiau.EntryMissing, doc.Sections[0].Children[1].Status)
	})

	t.Run("repeated key fetched once per round, applied at every position", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		fetched := map[string]int{}
		inner := dictFetcher(map[string]string{"好": "good entry"})
		fetcher := &mock.Fetcher{
			FetchAllFn: func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
				mu.Lock()
				for _, key := range keys {
					fetched[key]++
				}
				mu.Unlock()
				return inner.FetchAllFn(ctx, keys)
			},
		}

		r := newRunner(fixedSegmenter("好", "好"), fetcher)

		doc, err := r.Run(context.Background(), "好好")

		require.NoError(t, err)
		assert.Equal(t, 1, fetched["好"])
		require.Len(t, doc.Sections, 2)
		assert.Equal(t, "good entry", doc.Sections[0].Entry.Content)
		assert.Equal(t, "good entry", doc.Sections[1].Entry.Content)
		assert.Equal(t, 0, doc.Sections[0].Unit.Position)
		assert.Equal(t, 1, doc.Sections[1].Unit.Position)
	})

	t.Run("one key's transport failure does not alter sibling outcomes", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchAllFn: func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
				outcomes := make(map[string]tshiau.FetchOutcome, len(keys))
				for _, key := range keys {
					if key == "壞" {
						outcomes[key] = tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: errors.New("timeout")}
						continue
					}
					outcomes[key] = tshiau.FetchOutcome{Key: key, Status: tshiau.StatusFound, HTML: key + " entry"}
				}
				return outcomes, nil
			},
		}

		r := newRunner(fixedSegmenter("好", "壞"), fetcher)

		doc, err := r.Run(context.Background(), "好壞")

		require.NoError(t, err)
		assert.Equal(t, tshiau.EntryFound, doc.Sections[0].Entry.Status)
		assert.Equal(t, tshiau.EntryFailed, doc.Sections[1].Entry.Status)
		assert.Empty(t, doc.Sections[1].Children, "transport failure must not trigger fallback")
	})

	t.Run("empty input aborts before any fetch", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchAllFn: func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
				t.Error("fetch must not run for empty input")
				return nil, nil
			},
		}

		r := newRunner(fixedSegmenter(), fetcher)

		_, err := r.Run(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, tshiau.EINVALID, tshiau.ErrorCode(err))
	})

	t.Run("input that segments to nothing aborts", func(t *testing.T) {
		t.Parallel()

		r := newRunner(fixedSegmenter(), dictFetcher(nil))

		_, err := r.Run(context.Background(), "…")

		require.Error(t, err)
		assert.Equal(t, tshiau.EINVALID, tshiau.ErrorCode(err))
	})

	t.Run("total dictionary unreachability aborts the run", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchAllFn: func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
				outcomes := make(map[string]tshiau.FetchOutcome, len(keys))
				for _, key := range keys {
					outcomes[key] = tshiau.FetchOutcome{Key: key, Status: tshiau.StatusError, Err: errors.New("timeout")}
				}
				return outcomes, nil
			},
		}

		r := newRunner(fixedSegmenter("你好", "世界"), fetcher)

		_, err := r.Run(context.Background(), "你好世界")

		require.Error(t, err)
		assert.Equal(t, tshiau.EUNAVAILABLE, tshiau.ErrorCode(err))
	})

	t.Run("output is identical regardless of completion order", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"你好": "greeting entry",
			"北":  "north entry",
		}

		run := func() string {
			r := newRunner(fixedSegmenter("你好", "北平", "北"), dictFetcher(pages))
			doc, err := r.Run(context.Background(), "你好北平北")
			require.NoError(t, err)
			return pipeline.Format(doc)
		}

		first := run()
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, run())
		}
	})

	t.Run("keys are converted back to traditional before lookup", func(t *testing.T) {
		t.Parallel()

		norm := &mock.Normalizer{
			NormalizeFn: func(text string, dir tshiau.Direction) (string, error) {
				switch dir {
				case tshiau.ToSimplified:
					return "汉语", nil
				case tshiau.ToTraditional:
					return "漢語", nil
				}
				return text, nil
			},
		}
		var segmented string
		seg := &mock.Segmenter{
			SegmentFn: func(text string) ([]tshiau.Unit, error) {
				segmented = text
				return []tshiau.Unit{{Key: text, Position: 0}}, nil
			},
		}

		r := &pipeline.Runner{
			Normalizer: norm,
			Segmenter:  seg,
			Fetcher:    dictFetcher(map[string]string{"漢語": "entry"}),
			Renderer:   passthroughRenderer(),
		}

		doc, err := r.Run(context.Background(), "漢語")

		require.NoError(t, err)
		assert.Equal(t, "汉语", segmented, "segmenter receives simplified text")
		assert.Equal(t, "漢語", doc.Sections[0].Unit.Key, "lookup key is traditional")
		assert.Equal(t, tshiau.EntryFound, doc.Sections[0].Entry.Status)
	})
}
