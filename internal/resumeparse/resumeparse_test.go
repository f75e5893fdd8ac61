package resumeparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTaxonomy = []Skill{
	{Slug: "python", Aliases: []string{"Python"}, Kind: "skill", Weight: 1.0},
	{Slug: "docker", Aliases: []string{"Docker"}, Kind: "tool", Weight: 1.0},
	{Slug: "cpp", Aliases: []string{"C++"}, Kind: "skill", Weight: 1.0},
	{Slug: "aws-cert", Aliases: []string{"AWS Certified Solutions Architect"}, Kind: "cert", Weight: 1.5},
}

const cleanResume = `Jane Doe
jane.doe@example.com | +1 (415) 555-0199
https://linkedin.com/in/janedoe | https://github.com/janedoe

Summary
Backend engineer focused on distributed systems.

Experience
- Led a team of 5, improved deployment time by 40%
- Built pipelines processing $2M in transactions, 2019 - 2023

Education
BS Computer Science, GPA: 3.8, 2015 - 2019

Skills
- Python, Docker, C++
`

func TestParseIdempotence(t *testing.T) {
	first := Parse(cleanResume, testTaxonomy)
	second := Parse(cleanResume, testTaxonomy)
	assert.Equal(t, first, second)
}

func TestParseContact(t *testing.T) {
	p := Parse(cleanResume, testTaxonomy)

	assert.Equal(t, "jane.doe@example.com", p.Contact.Email)
	assert.Equal(t, "+14155550199", p.Contact.Phone)
	assert.True(t, p.Contact.HasLinkedIn)
	assert.True(t, p.Contact.HasPortfolio)
	assert.Len(t, p.Contact.Links, 2)
}

func TestParsePhoneTooShortDiscarded(t *testing.T) {
	text := "Reach me at 12345 during office hours, plenty of text follows here."
	p := Parse(text, nil)
	assert.Empty(t, p.Contact.Phone)
}

func TestParseSections(t *testing.T) {
	p := Parse(cleanResume, testTaxonomy)

	assert.Contains(t, p.Sections, "summary")
	assert.Contains(t, p.Sections, "experience")
	assert.Contains(t, p.Sections, "education")
	assert.Contains(t, p.Sections, "skills")
	assert.Contains(t, p.Sections["experience"], "Led a team of 5")

	// 4 of the 6 canonical headers present.
	assert.InDelta(t, 4.0/6.0, p.HasStandardHeaders, 1e-9)
}

func TestParseHeaderAliases(t *testing.T) {
	text := "Work History\nBuilt things at a startup for years.\n\nTechnical Skills\nPython and more Python content here.\n"
	p := Parse(text, testTaxonomy)

	// "work" and "technical" map onto the canonical experience and skills
	// headers respectively.
	assert.InDelta(t, 2.0/6.0, p.HasStandardHeaders, 1e-9)
	assert.Contains(t, p.Sections, "work")
	assert.Contains(t, p.Sections, "technical")
}

func TestParseSymbolicAlias(t *testing.T) {
	p := Parse("Ten years writing C++ services.", testTaxonomy)

	var found bool
	for _, mention := range p.Skills {
		if mention.Slug == "cpp" {
			found = true
			assert.Equal(t, "C++", mention.MatchedAlias)
		}
	}
	assert.True(t, found, "symbolic alias C++ should match")
}

func TestParseWordBoundaryAlias(t *testing.T) {
	// "Pythonic" must not match the alias "Python".
	p := Parse("I admire pythonic code style in all my projects and reviews.", testTaxonomy)
	for _, mention := range p.Skills {
		assert.NotEqual(t, "python", mention.Slug)
	}
}

func TestKeywordStuffing(t *testing.T) {
	single := Parse("Skills\nPython once, plus plenty of other text around it.", testTaxonomy)
	stuffed := Parse("Skills\n"+strings.Repeat("Python ", 20), testTaxonomy)

	assert.Zero(t, single.KeywordStuffingRatio)
	assert.Greater(t, stuffed.KeywordStuffingRatio, single.KeywordStuffingRatio)
	assert.Equal(t, 1.0, stuffed.KeywordStuffingRatio)
}

func TestStuffingRatioRamp(t *testing.T) {
	tests := []struct {
		repeats int
		want    float64
	}{
		{0, 0}, {3, 0}, {4, 0.1}, {8, 0.5}, {13, 1}, {20, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stuffingRatio(tt.repeats), 1e-9)
	}
}

func TestParseImpactSignals(t *testing.T) {
	p := Parse(cleanResume, testTaxonomy)

	assert.Greater(t, p.Impact.Verbs, 0)
	assert.Greater(t, p.Impact.Percents, 0)
	assert.Greater(t, p.Impact.Currency, 0)
	assert.Greater(t, p.Impact.Numbers, 0)
}

func TestParseTimeline(t *testing.T) {
	p := Parse(cleanResume, testTaxonomy)

	assert.Equal(t, 2015, p.Timeline.EarliestYear)
	assert.Equal(t, 2023, p.Timeline.LatestYear)
	assert.Greater(t, p.Timeline.DateTokens, 3)
}

func TestParseYearRange(t *testing.T) {
	p := Parse("Worked from 1899 to 2150, mostly in 2020 though.", nil)
	assert.Equal(t, 2020, p.Timeline.EarliestYear)
	assert.Equal(t, 2020, p.Timeline.LatestYear)
}

func TestParseGPA(t *testing.T) {
	t.Run("four point scale", func(t *testing.T) {
		p := Parse("Education\nGPA: 3.8 from a fine institution.", nil)
		require.True(t, p.Education.HasGPA)
		assert.InDelta(t, 3.8, p.Education.GPA, 1e-9)
	})

	t.Run("percent scale normalized by 25", func(t *testing.T) {
		p := Parse("Education\nGraduated with 85/100 overall.", nil)
		require.True(t, p.Education.HasGPA)
		assert.InDelta(t, 3.4, p.Education.GPA, 1e-9)
	})

	t.Run("absent", func(t *testing.T) {
		p := Parse("No grades mentioned anywhere in this text.", nil)
		assert.False(t, p.Education.HasGPA)
	})
}

func TestParseDegrees(t *testing.T) {
	p := Parse("Holds a BS in CS and an MBA, also pursuing a Ph.D part-time.", nil)
	assert.Contains(t, p.Education.Degrees, "BS")
	assert.Contains(t, p.Education.Degrees, "MBA")
	assert.Contains(t, p.Education.Degrees, "PHD")
}

func TestLanguageHint(t *testing.T) {
	assert.Equal(t, "en", Parse("English only resume text", nil).LangHint)
	assert.Equal(t, "ur", Parse("میں ایک", nil).LangHint)
	assert.Equal(t, "mixed", Parse("Engineer میں", nil).LangHint)
}

func TestBulletsRatio(t *testing.T) {
	p := Parse("Header text\n- one\n- two\n* three\n1. four\nplain line", nil)
	// 4 bullet lines out of 6 non-empty lines.
	assert.InDelta(t, 4.0/6.0, p.BulletsRatio, 1e-9)
}

func TestParseVersionTag(t *testing.T) {
	assert.Equal(t, Version, Parse("any text", nil).Version)
}

func TestFormatScoreBounds(t *testing.T) {
	weights := DefaultFormatWeights()

	texts := []string{
		"",
		cleanResume,
		strings.Repeat("Python ", 50),
		"- only\n- bullets\n- here",
	}
	for _, text := range texts {
		p := Parse(text, testTaxonomy)
		score := FormatScore(p, weights)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestFormatScoreStuffingPenalty(t *testing.T) {
	weights := DefaultFormatWeights()

	clean := Parse(cleanResume, testTaxonomy)
	stuffed := Parse(strings.Replace(cleanResume, "- Python, Docker, C++", strings.Repeat("Python ", 20), 1), testTaxonomy)

	cleanScore := FormatScore(clean, weights)
	stuffedScore := FormatScore(stuffed, weights)

	assert.Greater(t, stuffed.KeywordStuffingRatio, clean.KeywordStuffingRatio)
	assert.Less(t, stuffedScore, cleanScore)
}

func TestFormatScoreBulletsBand(t *testing.T) {
	weights := FormatWeights{Bullets: 1.0}

	inBand := &Parsed{BulletsRatio: 0.3}
	outOfBand := &Parsed{BulletsRatio: 0.9}

	assert.InDelta(t, 1.0, FormatScore(inBand, weights), 1e-9)
	assert.InDelta(t, 0.5, FormatScore(outOfBand, weights), 1e-9)
}

func TestCompileAliasPattern(t *testing.T) {
	t.Run("alphabetic gets word boundaries", func(t *testing.T) {
		re := CompileAliasPattern("Go")
		assert.True(t, re.MatchString("wrote Go services"))
		assert.False(t, re.MatchString("Golang"))
	})

	t.Run("symbolic matches raw", func(t *testing.T) {
		re := CompileAliasPattern("C++")
		assert.True(t, re.MatchString("modern C++ code"))
		assert.False(t, re.MatchString("plain C code"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		re := CompileAliasPattern("Docker")
		assert.True(t, re.MatchString("docker compose files"))
	})
}
