package resumeparse

import (
	"regexp"
	"strconv"
	"strings"
)

const maxContactLinks = 30

// gpaPercentDivisor converts an "X/100" grade to the 0-4 scale. The linear
// mapping is a rough approximation, not an official conversion.
const gpaPercentDivisor = 25.0

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?[\d][\d\s().\-]{6,}\d`)
	urlRe   = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s<>"']+`)

	numberRe   = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)
	percentRe  = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\s?%`)
	currencyRe = regexp.MustCompile(`(?i)[$€£₹₨]\s?\d|(?:\bUSD|\bPKR|\bEUR|\bGBP|\bRs\.?)\s?\d`)

	yearRe  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	monthRe = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)

	gpaScaleRe   = regexp.MustCompile(`(?i)\bc?g\.?p\.?a\.?\s*[:\-]?\s*([0-4](?:\.\d{1,2})?)\b`)
	gpaPercentRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?)\s*/\s*100\b`)

	degreeRe = regexp.MustCompile(`(?i)\b(ph\.?d|m\.?phil|m\.?b\.?a|m\.?s\.?c|m\.?s|m\.?a|m\.?e|b\.?s\.?c|b\.?s|b\.?a|b\.?e|b\.?b\.?a|b\.?tech|m\.?tech|f\.?sc|b\.?c\.?s|m\.?c\.?s)\b\.?`)
)

// achievementVerbs is the fixed vocabulary counted as impact signals.
var achievementVerbs = []string{
	"led", "improved", "increased", "reduced", "launched", "delivered",
	"built", "designed", "implemented", "optimized", "achieved", "managed",
	"created", "developed", "automated", "migrated", "scaled", "streamlined",
	"accelerated", "spearheaded", "decreased", "grew", "saved", "shipped",
}

var verbRe = regexp.MustCompile(`(?i)\b(` + strings.Join(achievementVerbs, "|") + `)\b`)

func parseContact(text string) Contact {
	c := Contact{
		Email: emailRe.FindString(text),
	}

	if raw := phoneRe.FindString(text); raw != "" {
		if phone := normalizePhone(raw); phone != "" {
			c.Phone = phone
		}
	}

	seen := make(map[string]bool)
	for _, raw := range urlRe.FindAllString(text, -1) {
		link := strings.TrimRight(raw, ".,;)")
		lower := strings.ToLower(link)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		c.Links = append(c.Links, link)

		switch {
		case strings.Contains(lower, "linkedin.com"):
			c.HasLinkedIn = true
		case strings.Contains(lower, "github.com"),
			strings.Contains(lower, "gitlab.com"),
			strings.Contains(lower, "behance.net"),
			strings.Contains(lower, "dribbble.com"),
			strings.Contains(lower, "portfolio"):
			c.HasPortfolio = true
		}

		if len(c.Links) >= maxContactLinks {
			break
		}
	}

	return c
}

// normalizePhone strips formatting, keeping digits and a leading plus.
// Numbers with fewer than 8 digits are discarded as false positives.
func normalizePhone(raw string) string {
	var buf strings.Builder
	digits := 0
	for i, r := range raw {
		if r == '+' && i == 0 {
			buf.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			buf.WriteRune(r)
			digits++
		}
	}
	if digits < 8 {
		return ""
	}
	return buf.String()
}

func parseImpact(text string) Impact {
	percents := len(percentRe.FindAllString(text, -1))
	return Impact{
		// Percent hits also match the bare-number pattern; keep the counts disjoint.
		Numbers:  len(numberRe.FindAllString(text, -1)) - percents,
		Percents: percents,
		Currency: len(currencyRe.FindAllString(text, -1)),
		Verbs:    len(verbRe.FindAllString(text, -1)),
	}
}

func parseTimeline(text string) Timeline {
	t := Timeline{}

	years := yearRe.FindAllString(text, -1)
	for _, y := range years {
		n, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		if t.EarliestYear == 0 || n < t.EarliestYear {
			t.EarliestYear = n
		}
		if n > t.LatestYear {
			t.LatestYear = n
		}
	}

	t.DateTokens = len(years) + len(monthRe.FindAllString(text, -1))
	return t
}

func parseEducation(text string) Education {
	e := Education{}

	if m := gpaScaleRe.FindStringSubmatch(text); m != nil {
		if gpa, err := strconv.ParseFloat(m[1], 64); err == nil && gpa <= 4.0 {
			e.GPA = gpa
			e.HasGPA = true
		}
	}
	if !e.HasGPA {
		if m := gpaPercentRe.FindStringSubmatch(text); m != nil {
			if pct, err := strconv.ParseFloat(m[1], 64); err == nil && pct <= 100 {
				e.GPA = pct / gpaPercentDivisor
				e.HasGPA = true
			}
		}
	}

	seen := make(map[string]bool)
	for _, raw := range degreeRe.FindAllString(text, -1) {
		degree := strings.ToUpper(strings.ReplaceAll(strings.TrimRight(raw, "."), ".", ""))
		if seen[degree] {
			continue
		}
		seen[degree] = true
		e.Degrees = append(e.Degrees, degree)
	}

	return e
}
