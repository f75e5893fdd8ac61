// Package resumeparse turns extracted resume text into a structured,
// explainable feature snapshot. Parsing is pure and deterministic:
// the same text and taxonomy always produce the same snapshot.
package resumeparse

import (
	"strings"
)

// Version tags every snapshot so stored parses can be detected as stale
// and re-parsed when the heuristics change.
const Version = "v1"

// Skill is one taxonomy concept the parser matches against.
type Skill struct {
	Slug    string
	Aliases []string
	Kind    string
	Weight  float64
}

// SkillMention records one taxonomy entry found in the text.
type SkillMention struct {
	Slug         string  `json:"slug"`
	MatchedAlias string  `json:"matchedAlias"`
	Confidence   float64 `json:"confidence"`
	Kind         string  `json:"kind,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
}

// Contact holds the contact surface of a resume.
type Contact struct {
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Links        []string `json:"links,omitempty"`
	HasLinkedIn  bool     `json:"hasLinkedIn"`
	HasPortfolio bool     `json:"hasPortfolio"`
}

// Impact counts quantified-accomplishment signals.
type Impact struct {
	Numbers  int `json:"numbers"`
	Percents int `json:"percents"`
	Currency int `json:"currency"`
	Verbs    int `json:"verbs"`
}

// Timeline holds date-richness signals.
type Timeline struct {
	EarliestYear int `json:"earliestYear,omitempty"`
	LatestYear   int `json:"latestYear,omitempty"`
	DateTokens   int `json:"dateTokens"`
}

// Education holds GPA and degree signals.
type Education struct {
	GPA     float64  `json:"gpa,omitempty"`
	HasGPA  bool     `json:"hasGpa"`
	Degrees []string `json:"degrees,omitempty"`
}

// Parsed is the immutable feature snapshot for one (text, taxonomy) pair.
type Parsed struct {
	Contact              Contact           `json:"contact"`
	Sections             map[string]string `json:"sections"`
	Skills               []SkillMention    `json:"skills"`
	BulletsRatio         float64           `json:"bulletsRatio"`
	HasStandardHeaders   float64           `json:"hasStandardHeaders"`
	KeywordStuffingRatio float64           `json:"keywordStuffingRatio"`
	Impact               Impact            `json:"impact"`
	Timeline             Timeline          `json:"timeline"`
	Education            Education         `json:"education"`
	LangHint             string            `json:"langHint"`
	WordCount            int               `json:"wordCount"`
	Version              string            `json:"version"`
}

// Parse builds the feature snapshot for text under the given taxonomy.
func Parse(text string, taxonomy []Skill) *Parsed {
	lines := strings.Split(text, "\n")

	sections, canonicalFound := foldSections(lines)
	mentions, stuffing := matchSkills(text, taxonomy)

	return &Parsed{
		Contact:              parseContact(text),
		Sections:             sections,
		Skills:               mentions,
		BulletsRatio:         bulletsRatio(lines),
		HasStandardHeaders:   float64(canonicalFound) / float64(len(canonicalHeaders)),
		KeywordStuffingRatio: stuffing,
		Impact:               parseImpact(text),
		Timeline:             parseTimeline(text),
		Education:            parseEducation(text),
		LangHint:             languageHint(text),
		WordCount:            len(strings.Fields(text)),
		Version:              Version,
	}
}

// canonicalHeaders is the fixed set whose detection rate feeds the
// hasStandardHeaders metric.
var canonicalHeaders = []string{"experience", "education", "skills", "projects", "certifications", "summary"}

// headerAliases maps a header's leading word to its canonical section.
var headerAliases = map[string]string{
	"experience":     "experience",
	"employment":     "experience",
	"work":           "experience",
	"professional":   "experience",
	"education":      "education",
	"academic":       "education",
	"skills":         "skills",
	"technical":      "skills",
	"technologies":   "skills",
	"projects":       "projects",
	"certifications": "certifications",
	"certificates":   "certifications",
	"licenses":       "certifications",
	"summary":        "summary",
	"objective":      "summary",
	"profile":        "summary",
	"about":          "summary",
	"publications":   "publications",
	"volunteering":   "volunteering",
	"volunteer":      "volunteering",
	"awards":         "awards",
	"languages":      "languages",
	"interests":      "interests",
	"references":     "references",
}

// foldSections is a single fold over lines carrying the current section key.
// A header line opens a new bucket keyed by its leading word; everything
// before the first header accumulates under "body".
func foldSections(lines []string) (map[string]string, int) {
	buffers := make(map[string]*strings.Builder)
	currentKey := "body"
	seenCanonical := make(map[string]bool)

	for _, line := range lines {
		if key, canonical, ok := headerKey(line); ok {
			currentKey = key
			if canonical != "" {
				seenCanonical[canonical] = true
			}
			continue
		}

		buf, exists := buffers[currentKey]
		if !exists {
			buf = &strings.Builder{}
			buffers[currentKey] = buf
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	sections := make(map[string]string, len(buffers))
	for key, buf := range buffers {
		if s := strings.TrimSpace(buf.String()); s != "" {
			sections[key] = s
		}
	}
	return sections, len(seenCanonical)
}

// headerKey reports whether a line is a section header. Headers are short
// lines whose leading word belongs to the header vocabulary, optionally
// followed by a qualifier ("Work Experience", "Technical Skills:").
func headerKey(line string) (key, canonical string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 48 {
		return "", "", false
	}

	trimmed = strings.TrimRight(trimmed, ":")
	fields := strings.Fields(strings.ToLower(trimmed))
	if len(fields) == 0 || len(fields) > 4 {
		return "", "", false
	}

	leading := strings.Trim(fields[0], ".,;")
	mapped, known := headerAliases[leading]
	if !known {
		return "", "", false
	}
	return leading, mapped, true
}

var bulletPrefixes = []string{"-", "*", "•", "●", "▪", "‣", "·", "○", "»", "→"}

// bulletsRatio is the fraction of non-empty lines that start with a bullet
// glyph or an ordinal like "1." or "1)".
func bulletsRatio(lines []string) float64 {
	total, bullets := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		total++
		if isBulletLine(trimmed) {
			bullets++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(bullets) / float64(total)
}

func isBulletLine(trimmed string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}

	// Ordinal bullets: one or two digits followed by "." or ")".
	i := 0
	for i < len(trimmed) && i < 2 && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')')
}

// languageHint inspects which scripts the text uses. Arabic-block presence
// covers Urdu.
func languageHint(text string) string {
	hasArabic, hasLatin := false, false
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			hasArabic = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLatin = true
		}
		if hasArabic && hasLatin {
			return "mixed"
		}
	}
	if hasArabic {
		return "ur"
	}
	return "en"
}
