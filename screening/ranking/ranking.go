// Package ranking scores a job's resume pool and produces an explainable,
// deduplicated ordering. The engine is pure: storage, job and taxonomy
// access stay behind the service layer.
package ranking

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/job"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/taxonomy"
)

// MaxResults caps how many ranked entries one request returns.
const MaxResults = 50

// maxScoringConcurrency bounds the parallel per-resume scoring.
const maxScoringConcurrency = 8

// Weights configures the composite score. Values are hand-tuned product
// constants; keep them named and overridable, not inlined.
type Weights struct {
	SkillCoverage  float64
	TextSimilarity float64
	FormatScore    float64
	ImpactScore    float64
	CertBonus      float64
	ToolBonus      float64
	SoftSkillBonus float64

	// PresencePerLink is added once per detected LinkedIn/portfolio link.
	PresencePerLink float64

	// MaxScore is the hard ceiling after bonuses.
	MaxScore float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		SkillCoverage:   0.35,
		TextSimilarity:  0.20,
		FormatScore:     0.20,
		ImpactScore:     0.15,
		CertBonus:       0.05,
		ToolBonus:       0.05,
		SoftSkillBonus:  0.00,
		PresencePerLink: 0.05,
		MaxScore:        1.1,
	}
}

// Options narrows and shapes one ranking request.
type Options struct {
	// ResumeID restricts ranking to a single record and disables dedup.
	ResumeID kernel.ResumeID

	// CandidateID restricts the pool to one candidate's records.
	CandidateID kernel.CandidateID

	// IncludeAll disables latest-per-candidate dedup.
	IncludeAll bool
}

// Breakdown itemizes every score component for explainability.
type Breakdown struct {
	SkillCoverage  float64 `json:"skillCoverage"`
	TextSimilarity float64 `json:"textSimilarity"`
	FormatScore    float64 `json:"formatScore"`
	ImpactScore    float64 `json:"impactScore"`
	CertBonus      float64 `json:"certBonus"`
	ToolBonus      float64 `json:"toolBonus"`
	SoftSkillBonus float64 `json:"softSkillBonus"`
	PresenceBonus  float64 `json:"presenceBonus"`
}

// MatchedSkill is one taxonomy concept found in a ranked resume.
type MatchedSkill struct {
	Slug         string  `json:"slug"`
	MatchedAlias string  `json:"matchedAlias,omitempty"`
	Kind         string  `json:"kind,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	Required     bool    `json:"required"`
}

// Result is one ranked entry. Results are ephemeral and recomputed per
// request, never persisted.
type Result struct {
	ResumeID      kernel.ResumeID      `json:"resumeId"`
	ApplicationID kernel.ApplicationID `json:"applicationId"`
	CandidateID   kernel.CandidateID   `json:"candidateId,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	Score         float64              `json:"score"`
	Breakdown     Breakdown            `json:"breakdown"`
	MatchedSkills []MatchedSkill       `json:"matchedSkills"`
	TopJobTerms   []string             `json:"topJobTerms"`
}

// Engine ranks resume pools against jobs.
type Engine struct {
	weights Weights
}

// NewEngine creates a ranking engine with the given weights.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Rank scores the pool against the job and returns a sorted, deduplicated,
// capped result list. An empty pool yields an empty list, not an error.
func (e *Engine) Rank(ctx context.Context, j *job.Job, entries []taxonomy.Entry, pool []*resume.ResumeRecord, opts Options) ([]*Result, error) {
	pool = filterPool(pool, opts)
	pool = dedupPool(pool, opts)

	if len(pool) == 0 {
		return []*Result{}, nil
	}

	jobTokens := tokenizeSet(j.DescriptionText)
	topTerms := topJobTerms(j.DescriptionText, maxTopJobTerms)
	scorer := newScorer(e.weights, j, entries, jobTokens)

	// Per-resume scoring has no cross-resume dependency; score in parallel
	// into fixed slots so ordering stays deterministic.
	results := make([]*Result, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxScoringConcurrency)
	for i, record := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scorer.score(record, topTerms)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stable sort: ties keep pool iteration order for reproducibility.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results, nil
}

func filterPool(pool []*resume.ResumeRecord, opts Options) []*resume.ResumeRecord {
	if opts.ResumeID.IsEmpty() && opts.CandidateID.IsEmpty() {
		return pool
	}

	filtered := make([]*resume.ResumeRecord, 0, len(pool))
	for _, record := range pool {
		if !opts.ResumeID.IsEmpty() && record.ID != opts.ResumeID {
			continue
		}
		if !opts.CandidateID.IsEmpty() && record.CandidateID != opts.CandidateID {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// dedupPool collapses the pool to the latest record per candidate. The pool
// is expected newest-first but is re-sorted defensively rather than trusting
// caller ordering.
func dedupPool(pool []*resume.ResumeRecord, opts Options) []*resume.ResumeRecord {
	if opts.IncludeAll || !opts.ResumeID.IsEmpty() {
		return pool
	}

	sorted := make([]*resume.ResumeRecord, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})

	seen := make(map[string]bool, len(sorted))
	deduped := make([]*resume.ResumeRecord, 0, len(sorted))
	for _, record := range sorted {
		key := record.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, record)
	}
	return deduped
}
