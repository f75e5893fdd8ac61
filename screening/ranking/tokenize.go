package ranking

import (
	"sort"
	"strings"

	"github.com/hireloop/screenline/screening/resume"
)

// maxTopJobTerms caps the job-term list echoed in every result.
const maxTopJobTerms = 12

// lowWeightMinOccurrences is how often a token must appear when it shows up
// only outside the recruiter-relevant sections.
const lowWeightMinOccurrences = 2

// highWeightSections are the section keys whose tokens always count toward
// similarity. Keys follow the parser's leading-word sectioning.
var highWeightSections = map[string]bool{
	"experience":   true,
	"employment":   true,
	"work":         true,
	"professional": true,
	"skills":       true,
	"technical":    true,
	"technologies": true,
	"summary":      true,
	"objective":    true,
	"profile":      true,
	"about":        true,
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "in": true, "is": true, "it": true, "its": true, "of": true,
	"on": true, "or": true, "our": true, "that": true, "the": true, "their": true,
	"this": true, "to": true, "was": true, "we": true, "were": true, "will": true,
	"with": true, "you": true, "your": true, "not": true, "all": true, "also": true,
	"about": true, "into": true, "more": true, "other": true, "such": true,
	"than": true, "them": true, "they": true, "these": true, "those": true,
	"who": true, "work": true, "team": true, "experience": true, "years": true,
	"ability": true, "strong": true, "including": true, "required": true,
	"preferred": true, "must": true, "should": true, "using": true, "etc": true,
}

// tokenize splits text into lowercase word tokens, keeping characters that
// matter in technology names ("+", "#", ".") and dropping stopwords and
// single characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		case r == '+' || r == '#' || r == '.' || r == '-':
			return false
		default:
			return true
		}
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".-")
		if len(f) < 2 || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func tokenizeSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range tokenize(text) {
		set[token] = true
	}
	return set
}

// topJobTerms returns the most frequent job-description tokens, ties broken
// alphabetically for determinism.
func topJobTerms(text string, limit int) []string {
	counts := make(map[string]int)
	for _, token := range tokenize(text) {
		counts[token]++
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		if counts[terms[a]] != counts[terms[b]] {
			return counts[terms[a]] > counts[terms[b]]
		}
		return terms[a] < terms[b]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// resumeTokenSet builds the section-weighted token set for similarity.
// Tokens from recruiter-relevant sections always count; tokens seen only in
// low-weight sections must repeat to make it in. Records without a parsed
// snapshot fall back to the full raw text.
func resumeTokenSet(record *resume.ResumeRecord) map[string]bool {
	if record.Parsed == nil || len(record.Parsed.Sections) == 0 {
		return tokenizeSet(record.RawText)
	}

	set := make(map[string]bool)
	lowCounts := make(map[string]int)

	for key, content := range record.Parsed.Sections {
		tokens := tokenize(content)
		if highWeightSections[key] {
			for _, token := range tokens {
				set[token] = true
			}
			continue
		}
		for _, token := range tokens {
			lowCounts[token]++
		}
	}

	for token, count := range lowCounts {
		if count >= lowWeightMinOccurrences {
			set[token] = true
		}
	}
	return set
}

// jaccard is intersection-over-union of two token sets.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
