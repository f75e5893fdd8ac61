package taxonomy

import (
	"github.com/hireloop/screenline/internal/resumeparse"
	"github.com/hireloop/screenline/pkg/kernel"
)

// Kind classifies taxonomy entries for scoring purposes.
type Kind string

const (
	KindSkill    Kind = "skill"
	KindTool     Kind = "tool"
	KindPlatform Kind = "platform"
	KindCert     Kind = "cert"
	KindSoft     Kind = "soft"
)

// Entry is one canonical skill concept with its alias surface forms.
type Entry struct {
	Slug kernel.SkillSlug `db:"slug" json:"slug"`

	// Aliases are the case-insensitive surface forms matched in resume text.
	Aliases []string `db:"aliases" json:"aliases"`

	// LocaleAliases are localized surface forms. They merge into Aliases
	// before matching; no origin distinction is retained downstream.
	LocaleAliases []string `db:"locale_aliases" json:"localeAliases,omitempty"`

	Kind   Kind    `db:"kind" json:"kind,omitempty"`
	Weight float64 `db:"weight" json:"weight,omitempty"`
}

// MatchAliases returns the full alias list used for matching, locale
// aliases included, duplicates removed.
func (e *Entry) MatchAliases() []string {
	if len(e.LocaleAliases) == 0 {
		return e.Aliases
	}

	seen := make(map[string]bool, len(e.Aliases)+len(e.LocaleAliases))
	merged := make([]string, 0, len(e.Aliases)+len(e.LocaleAliases))
	for _, alias := range append(append([]string{}, e.Aliases...), e.LocaleAliases...) {
		if alias == "" || seen[alias] {
			continue
		}
		seen[alias] = true
		merged = append(merged, alias)
	}
	return merged
}

// EffectiveWeight returns the entry weight, defaulting to 1.0.
func (e *Entry) EffectiveWeight() float64 {
	if e.Weight == 0 {
		return 1.0
	}
	return e.Weight
}

// ToParserSkill converts the entry into the parser's matching input.
func (e *Entry) ToParserSkill() resumeparse.Skill {
	return resumeparse.Skill{
		Slug:    e.Slug.String(),
		Aliases: e.MatchAliases(),
		Kind:    string(e.Kind),
		Weight:  e.EffectiveWeight(),
	}
}

// ToParserSkills converts a snapshot for the parser, preserving order so
// parse results stay deterministic.
func ToParserSkills(entries []Entry) []resumeparse.Skill {
	skills := make([]resumeparse.Skill, 0, len(entries))
	for i := range entries {
		skills = append(skills, entries[i].ToParserSkill())
	}
	return skills
}
