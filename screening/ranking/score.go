package ranking

import (
	"sort"

	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/screening/job"
	"github.com/hireloop/screenline/screening/resume"
	"github.com/hireloop/screenline/screening/taxonomy"
)

// impactDenominator normalizes the summed impact signals.
const impactDenominator = 20.0

// impactVerbCap keeps verb-heavy prose from dominating the impact score.
const impactVerbCap = 12

// scorer carries the per-request state shared by all resume scorings.
type scorer struct {
	weights   Weights
	job       *job.Job
	entries   map[string]*taxonomy.Entry
	jobTokens map[string]bool
}

func newScorer(weights Weights, j *job.Job, entries []taxonomy.Entry, jobTokens map[string]bool) *scorer {
	index := make(map[string]*taxonomy.Entry, len(entries))
	for i := range entries {
		index[entries[i].Slug.String()] = &entries[i]
	}
	return &scorer{
		weights:   weights,
		job:       j,
		entries:   index,
		jobTokens: jobTokens,
	}
}

func (s *scorer) score(record *resume.ResumeRecord, topTerms []string) *Result {
	coverage, matched := s.skillCoverage(record)

	breakdown := Breakdown{
		SkillCoverage:  coverage,
		TextSimilarity: s.textSimilarity(record),
		FormatScore:    record.FormatScore,
		ImpactScore:    impactScore(record.Parsed),
	}
	breakdown.CertBonus, breakdown.ToolBonus, breakdown.SoftSkillBonus = s.kindBonuses(record.Parsed)
	breakdown.PresenceBonus = s.presenceBonus(record.Parsed)

	score := s.weights.SkillCoverage*breakdown.SkillCoverage +
		s.weights.TextSimilarity*breakdown.TextSimilarity +
		s.weights.FormatScore*breakdown.FormatScore +
		s.weights.ImpactScore*breakdown.ImpactScore +
		s.weights.CertBonus*breakdown.CertBonus +
		s.weights.ToolBonus*breakdown.ToolBonus +
		s.weights.SoftSkillBonus*breakdown.SoftSkillBonus +
		breakdown.PresenceBonus

	if score < 0 {
		score = 0
	}
	if score > s.weights.MaxScore {
		score = s.weights.MaxScore
	}

	return &Result{
		ResumeID:      record.ID,
		ApplicationID: record.ApplicationID,
		CandidateID:   record.CandidateID,
		CreatedAt:     record.CreatedAt,
		Score:         score,
		Breakdown:     breakdown,
		MatchedSkills: matched,
		TopJobTerms:   topTerms,
	}
}

// skillCoverage is the taxonomy-weighted fraction of required slugs found.
// The parsed snapshot is authoritative; raw-text alias matching is the
// fallback for records parsed before the slug entered the taxonomy.
func (s *scorer) skillCoverage(record *resume.ResumeRecord) (float64, []MatchedSkill) {
	mentions := mentionIndex(record.Parsed)
	matched := make([]MatchedSkill, 0, len(mentions))

	if !s.job.HasRequiredSkills() {
		return 0, appendIncidental(matched, mentions, nil)
	}

	var num, denom float64
	required := make(map[string]bool, len(s.job.RequiredSkillSlugs))
	for _, slug := range s.job.RequiredSkillSlugs {
		required[slug.String()] = true

		weight := 1.0
		entry := s.entries[slug.String()]
		if entry != nil {
			weight = entry.EffectiveWeight()
		}
		denom += weight

		if mention, ok := mentions[slug.String()]; ok {
			num += weight
			matched = append(matched, MatchedSkill{
				Slug:         mention.Slug,
				MatchedAlias: mention.MatchedAlias,
				Kind:         mention.Kind,
				Weight:       weight,
				Required:     true,
			})
			continue
		}

		if entry != nil {
			if alias := firstAliasInText(entry, record.RawText); alias != "" {
				num += weight
				matched = append(matched, MatchedSkill{
					Slug:         slug.String(),
					MatchedAlias: alias,
					Kind:         string(entry.Kind),
					Weight:       weight,
					Required:     true,
				})
			}
		}
	}

	if denom == 0 {
		return 0, appendIncidental(matched, mentions, required)
	}
	return num / denom, appendIncidental(matched, mentions, required)
}

// appendIncidental adds non-required taxonomy matches so the output shows
// everything the resume brought, not just what the job asked for.
func appendIncidental(matched []MatchedSkill, mentions map[string]resumeparse.SkillMention, required map[string]bool) []MatchedSkill {
	for _, slug := range sortedMentionSlugs(mentions) {
		if required[slug] {
			continue
		}
		mention := mentions[slug]
		matched = append(matched, MatchedSkill{
			Slug:         mention.Slug,
			MatchedAlias: mention.MatchedAlias,
			Kind:         mention.Kind,
			Weight:       mention.Weight,
			Required:     false,
		})
	}
	return matched
}

func firstAliasInText(entry *taxonomy.Entry, text string) string {
	if text == "" {
		return ""
	}
	for _, alias := range entry.MatchAliases() {
		if alias == "" {
			continue
		}
		if resumeparse.CompileAliasPattern(alias).MatchString(text) {
			return alias
		}
	}
	return ""
}

// textSimilarity is the Jaccard overlap between job tokens and the
// section-weighted resume token set.
func (s *scorer) textSimilarity(record *resume.ResumeRecord) float64 {
	resumeTokens := resumeTokenSet(record)
	return jaccard(s.jobTokens, resumeTokens)
}

func impactScore(parsed *resumeparse.Parsed) float64 {
	if parsed == nil {
		return 0
	}

	verbs := parsed.Impact.Verbs
	if verbs > impactVerbCap {
		verbs = impactVerbCap
	}

	score := float64(parsed.Impact.Numbers+parsed.Impact.Percents+parsed.Impact.Currency+verbs) / impactDenominator
	if score > 1 {
		return 1
	}
	return score
}

// kindBonuses sums per-kind weighted contributions over every matched skill,
// certs normalized hardest since they are the rarest signal.
func (s *scorer) kindBonuses(parsed *resumeparse.Parsed) (cert, tool, soft float64) {
	if parsed == nil {
		return 0, 0, 0
	}

	for _, mention := range parsed.Skills {
		weight := mention.Weight
		if weight == 0 {
			weight = 1.0
		}
		switch taxonomy.Kind(mention.Kind) {
		case taxonomy.KindCert:
			cert += weight
		case taxonomy.KindTool, taxonomy.KindPlatform:
			tool += weight
		case taxonomy.KindSoft:
			soft += weight
		}
	}

	return clamp01(cert / 2), clamp01(tool / 3), clamp01(soft / 3)
}

func (s *scorer) presenceBonus(parsed *resumeparse.Parsed) float64 {
	if parsed == nil {
		return 0
	}

	bonus := 0.0
	if parsed.Contact.HasLinkedIn {
		bonus += s.weights.PresencePerLink
	}
	if parsed.Contact.HasPortfolio {
		bonus += s.weights.PresencePerLink
	}
	return bonus
}

// sortedMentionSlugs gives map iteration a stable order.
func sortedMentionSlugs(mentions map[string]resumeparse.SkillMention) []string {
	slugs := make([]string, 0, len(mentions))
	for slug := range mentions {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func mentionIndex(parsed *resumeparse.Parsed) map[string]resumeparse.SkillMention {
	if parsed == nil {
		return map[string]resumeparse.SkillMention{}
	}
	index := make(map[string]resumeparse.SkillMention, len(parsed.Skills))
	for _, mention := range parsed.Skills {
		index[mention.Slug] = mention
	}
	return index
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
