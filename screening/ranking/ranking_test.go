package ranking

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
	"github.com/hireloop/screenline/screening/job"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/taxonomy"
)

var testEntries = []taxonomy.Entry{
	{Slug: "python", Aliases: []string{"Python"}, Kind: taxonomy.KindSkill, Weight: 1.0},
	{Slug: "docker", Aliases: []string{"Docker"}, Kind: taxonomy.KindTool, Weight: 1.0},
	{Slug: "kubernetes", Aliases: []string{"Kubernetes", "k8s"}, Kind: taxonomy.KindPlatform, Weight: 1.0},
	{Slug: "aws-sa", Aliases: []string{"AWS Certified Solutions Architect"}, Kind: taxonomy.KindCert, Weight: 1.5},
	{Slug: "communication", Aliases: []string{"communication"}, Kind: taxonomy.KindSoft, Weight: 1.0},
}

func testJob(required ...string) *job.Job {
	slugs := make([]kernel.SkillSlug, 0, len(required))
	for _, s := range required {
		slugs = append(slugs, kernel.SkillSlug(s))
	}
	return &job.Job{
		ID:                 "job-1",
		Title:              "Backend Engineer",
		DescriptionText:    "We build Python services deployed with Docker and Kubernetes on cloud infrastructure.",
		RequiredSkillSlugs: slugs,
	}
}

// makeRecord runs the real parser so records look like production rows.
func makeRecord(id, appID, candID, text string, createdAt time.Time) *resume.ResumeRecord {
	parsed := resumeparse.Parse(text, taxonomy.ToParserSkills(testEntries))
	return &resume.ResumeRecord{
		ID:            kernel.ResumeID(id),
		ApplicationID: kernel.ApplicationID(appID),
		CandidateID:   kernel.CandidateID(candID),
		RawText:       text,
		Parsed:        parsed,
		FormatScore:   resumeparse.FormatScore(parsed, resumeparse.DefaultFormatWeights()),
		ParserVersion: parsed.Version,
		CreatedAt:     createdAt,
	}
}

const strongResume = `Summary
Backend engineer with an eye for reliability.

Experience
- Led a team of 5, improved deployment time by 40%

Skills
- Python, Docker
`

func TestRankFullCoverageAndImpact(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "c1", strongResume, time.Now()),
	}

	results, err := engine.Rank(context.Background(), testJob("python", "docker"), testEntries, pool, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 1.0, r.Breakdown.SkillCoverage, 1e-9)
	assert.Greater(t, r.Breakdown.ImpactScore, 0.0)
	assert.Greater(t, r.Score, 0.0)

	var requiredMatches int
	for _, m := range r.MatchedSkills {
		if m.Required {
			requiredMatches++
		}
	}
	assert.Equal(t, 2, requiredMatches)
}

func TestRankEmptyPool(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, nil, Options{})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRankDedupLatestPerCandidate(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Oldest-first input: the engine must re-sort defensively.
	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "c1", strongResume, base),
		makeRecord("r2", "a1", "c1", strongResume, base.Add(time.Hour)),
		makeRecord("r3", "a1", "c1", strongResume, base.Add(2*time.Hour)),
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, kernel.ResumeID("r3"), results[0].ResumeID)
}

func TestRankDedupSyntheticKeyPerApplication(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	// No candidate identifiers: distinct applications must not merge.
	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "", strongResume, now),
		makeRecord("r2", "a2", "", strongResume, now.Add(time.Minute)),
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRankIncludeAll(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "c1", strongResume, now),
		makeRecord("r2", "a1", "c1", strongResume, now.Add(time.Minute)),
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{IncludeAll: true})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRankResumeIDFilter(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "c1", strongResume, now),
		makeRecord("r2", "a2", "c2", strongResume, now),
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{ResumeID: "r2"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, kernel.ResumeID("r2"), results[0].ResumeID)
}

func TestRankCandidateIDFilter(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "c1", strongResume, now),
		makeRecord("r2", "a2", "c2", strongResume, now),
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{CandidateID: "c2"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, kernel.CandidateID("c2"), results[0].CandidateID)
}

func TestRankRawTextFallbackCoverage(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	// Record parsed before kubernetes entered the taxonomy: the snapshot
	// has no mention, but the raw text carries the alias.
	record := makeRecord("r1", "a1", "c1", strongResume, time.Now())
	record.RawText += "\nAlso ran workloads on k8s in production."
	record.Parsed.Skills = record.Parsed.Skills[:0]

	results, err := engine.Rank(context.Background(), testJob("kubernetes"), testEntries, []*resume.ResumeRecord{record}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Breakdown.SkillCoverage, 1e-9)
}

func TestRankScoreBounds(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	texts := []string{
		strongResume,
		"",
		"Led improved increased reduced launched delivered built designed implemented optimized " +
			"achieved managed created developed 40% 50% $9M linkedin https://linkedin.com/in/x https://github.com/x " +
			"Python Docker Kubernetes AWS Certified Solutions Architect communication",
	}

	pool := make([]*resume.ResumeRecord, 0, len(texts))
	for i, text := range texts {
		pool = append(pool, makeRecord("r"+strconv.Itoa(i), "app-"+strconv.Itoa(i), "", text, now))
	}

	results, err := engine.Rank(context.Background(), testJob("python", "docker"), testEntries, pool, Options{IncludeAll: true})
	require.NoError(t, err)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.1)
	}
}

func TestRankStableTies(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	// Identical resumes score identically; ties keep pool order.
	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "", strongResume, now),
		makeRecord("r2", "a2", "", strongResume, now),
		makeRecord("r3", "a3", "", strongResume, now),
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{IncludeAll: true})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, kernel.ResumeID("r1"), results[0].ResumeID)
	assert.Equal(t, kernel.ResumeID("r2"), results[1].ResumeID)
	assert.Equal(t, kernel.ResumeID("r3"), results[2].ResumeID)
}

func TestRankCapsResults(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	now := time.Now()

	pool := make([]*resume.ResumeRecord, 0, 60)
	for i := 0; i < 60; i++ {
		pool = append(pool, makeRecord("r"+strconv.Itoa(i), "app-"+strconv.Itoa(i), "", strongResume, now))
	}

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries, pool, Options{IncludeAll: true})
	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
}

func TestRankNoRequiredSkills(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	pool := []*resume.ResumeRecord{
		makeRecord("r1", "a1", "c1", strongResume, time.Now()),
	}

	results, err := engine.Rank(context.Background(), testJob(), testEntries, pool, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Breakdown.SkillCoverage)
}

func TestRankCoverageUnaffectedByDescriptionMentions(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	record := makeRecord("r1", "a1", "c1", strongResume, time.Now())

	base := testJob("python", "docker")
	enriched := testJob("python", "docker")
	enriched.DescriptionText += " Python Python Docker Kubernetes"

	baseResults, err := engine.Rank(context.Background(), base, testEntries, []*resume.ResumeRecord{record}, Options{})
	require.NoError(t, err)
	enrichedResults, err := engine.Rank(context.Background(), enriched, testEntries, []*resume.ResumeRecord{record}, Options{})
	require.NoError(t, err)

	// Coverage depends on required slugs and resume content only; piling
	// skill mentions into the description must never lower it.
	assert.GreaterOrEqual(t,
		enrichedResults[0].Breakdown.SkillCoverage,
		baseResults[0].Breakdown.SkillCoverage)
	assert.InDelta(t,
		baseResults[0].Breakdown.SkillCoverage,
		enrichedResults[0].Breakdown.SkillCoverage, 1e-9)
}

func TestRankPresenceBonus(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	withLinks := makeRecord("r1", "a1", "c1",
		strongResume+"\nhttps://linkedin.com/in/dev | https://github.com/dev\n", time.Now())
	without := makeRecord("r2", "a2", "c2", strongResume, time.Now())

	results, err := engine.Rank(context.Background(), testJob("python"), testEntries,
		[]*resume.ResumeRecord{withLinks, without}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	byID := map[kernel.ResumeID]*Result{}
	for _, r := range results {
		byID[r.ResumeID] = r
	}
	assert.InDelta(t, 0.10, byID["r1"].Breakdown.PresenceBonus, 1e-9)
	assert.Zero(t, byID["r2"].Breakdown.PresenceBonus)
}

func TestTopJobTerms(t *testing.T) {
	terms := topJobTerms("python python python docker docker kubernetes", 12)
	require.NotEmpty(t, terms)
	assert.Equal(t, "python", terms[0])
	assert.Equal(t, "docker", terms[1])
	assert.LessOrEqual(t, len(terms), 12)
}

func TestJaccard(t *testing.T) {
	a := map[string]bool{"python": true, "docker": true}
	b := map[string]bool{"python": true, "rust": true}

	assert.InDelta(t, 1.0/3.0, jaccard(a, b), 1e-9)
	assert.Zero(t, jaccard(a, map[string]bool{}))
	assert.Zero(t, jaccard(nil, b))
}

func TestTokenizeKeepsTechTokens(t *testing.T) {
	tokens := tokenize("Built C++ services and .NET apps with node.js")
	assert.Contains(t, tokens, "c++")
	assert.Contains(t, tokens, "node.js")
}
