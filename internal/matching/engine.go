// Package matching scores a candidate profile against job postings, ranks
// them and explains each ranking. Scoring is deterministic and rule based.
package matching

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hh-matcher/internal/utils"
)

const previewLength = 60

// Engine ranks postings for a candidate.
type Engine struct {
	scorer  *Scorer
	repo    PostingRepository
	workers int
	logger  *zap.Logger
}

// NewEngine creates a ranking engine. repo may be nil when only Rank is used.
// workers <= 0 uses one worker per available CPU.
func NewEngine(scorer *Scorer, repo PostingRepository, workers int, logger *zap.Logger) *Engine {
	if scorer == nil {
		scorer = NewScorer(DefaultWeights(), nil, nil)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{scorer: scorer, repo: repo, workers: workers, logger: logger}
}

// Scorer returns the scorer used for every posting.
func (e *Engine) Scorer() *Scorer { return e.scorer }

// Rank scores every posting and returns results ordered by match score,
// highest first. Postings with equal scores keep their catalog order.
// A nil postings slice is a caller error; an empty one yields no results.
func (e *Engine) Rank(candidate CandidateProfile, postings []Posting) ([]MatchResult, error) {
	if postings == nil {
		return nil, fmt.Errorf("%w: postings are required", ErrInvalidInput)
	}

	results := make([]MatchResult, len(postings))
	if len(postings) == 0 {
		return results, nil
	}

	// A single instant keeps every posting on the same clock.
	now := e.scorer.now()

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range postings {
		g.Go(func() error {
			results[i] = e.scorer.scoreAt(candidate, postings[i], now)
			return nil
		})
	}
	// Workers never fail.
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if e.logger.Core().Enabled(zap.DebugLevel) {
		for _, r := range results {
			e.logger.Debug("posting scored",
				zap.String("posting_id", r.Posting.ID),
				zap.String("title", utils.TruncateForLog(r.Posting.Title, previewLength)),
				zap.Float64("match_score", r.MatchScore),
				zap.String("dominant", string(Dominant(*r.Components))),
			)
		}
	}

	e.logger.Info("postings ranked",
		zap.Int("postings", len(results)),
		zap.Int("workers", e.workers),
	)

	return results, nil
}

// RankCatalog pulls postings from the repository and ranks them.
func (e *Engine) RankCatalog(ctx context.Context, candidate CandidateProfile) ([]MatchResult, error) {
	if e.repo == nil {
		return nil, fmt.Errorf("%w: posting repository is not configured", ErrInvalidInput)
	}

	postings, err := e.repo.Postings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading postings: %w", err)
	}
	if postings == nil {
		postings = []Posting{}
	}

	return e.Rank(candidate, postings)
}
