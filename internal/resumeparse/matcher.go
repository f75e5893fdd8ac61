package resumeparse

import (
	"regexp"
	"sync"
)

// patternCache memoizes alias → compiled pattern. Alias compilation is a
// pure function, so the cache is safe to share across requests.
var patternCache sync.Map

// CompileAliasPattern builds the case-insensitive pattern for one alias.
// Aliases that start and end on word characters get word-boundary anchors;
// symbolic aliases like "C++" or ".NET" are matched raw, since \b does not
// behave usefully next to non-word characters.
func CompileAliasPattern(alias string) *regexp.Regexp {
	if cached, ok := patternCache.Load(alias); ok {
		return cached.(*regexp.Regexp)
	}

	quoted := regexp.QuoteMeta(alias)
	expr := "(?i)" + quoted
	if isWordChar(alias[0]) && isWordChar(alias[len(alias)-1]) {
		expr = `(?i)\b` + quoted + `\b`
	}

	re := regexp.MustCompile(expr)
	patternCache.Store(alias, re)
	return re
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// matchSkills scans the text for every taxonomy entry. An entry is found if
// any of its aliases matches anywhere. The stuffing ratio is derived from
// the single most-repeated matched slug: mentioning a skill a few times is
// normal, mechanical repetition is not.
func matchSkills(text string, taxonomy []Skill) ([]SkillMention, float64) {
	var mentions []SkillMention
	maxRepeat := 0

	for _, entry := range taxonomy {
		matchedAlias := ""
		repeats := 0
		for _, alias := range entry.Aliases {
			if alias == "" {
				continue
			}
			re := CompileAliasPattern(alias)
			hits := len(re.FindAllStringIndex(text, -1))
			if hits == 0 {
				continue
			}
			if matchedAlias == "" {
				matchedAlias = alias
			}
			repeats += hits
		}
		if matchedAlias == "" {
			continue
		}

		weight := entry.Weight
		if weight == 0 {
			weight = 1.0
		}
		mentions = append(mentions, SkillMention{
			Slug:         entry.Slug,
			MatchedAlias: matchedAlias,
			Confidence:   1.0,
			Kind:         entry.Kind,
			Weight:       weight,
		})

		if repeats > maxRepeat {
			maxRepeat = repeats
		}
	}

	return mentions, stuffingRatio(maxRepeat)
}

// stuffingRatio ramps linearly from 0 at <=3 repeats to 1 at >=13.
func stuffingRatio(maxRepeat int) float64 {
	ratio := float64(maxRepeat-3) / 10.0
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
