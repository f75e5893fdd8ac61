package resumeparse

// FormatWeights configures the format-quality score. The defaults are
// hand-tuned product values, kept named so deployments can override them.
type FormatWeights struct {
	Contact  float64
	Headers  float64
	Bullets  float64
	Stuffing float64
	Timeline float64
}

// DefaultFormatWeights returns the production weighting. The heavy stuffing
// term is the primary anti-gaming defense.
func DefaultFormatWeights() FormatWeights {
	return FormatWeights{
		Contact:  0.18,
		Headers:  0.18,
		Bullets:  0.18,
		Stuffing: 0.36,
		Timeline: 0.10,
	}
}

// FormatScore derives the format-quality score in [0,1] from a snapshot.
func FormatScore(p *Parsed, w FormatWeights) float64 {
	contact := 0.0
	if p.Contact.Email != "" || p.Contact.Phone != "" {
		contact = 1.0
	}

	// Bullet usage is rewarded inside a sane band; both walls of text and
	// all-bullet resumes score the fallback value.
	bullets := 0.5
	if p.BulletsRatio >= 0.10 && p.BulletsRatio <= 0.70 {
		bullets = 1.0
	}

	timeline := 0.6
	switch {
	case p.Timeline.DateTokens > 3:
		timeline = 1.0
	case p.Timeline.DateTokens >= 1:
		timeline = 0.8
	}

	score := w.Contact*contact +
		w.Headers*p.HasStandardHeaders +
		w.Bullets*bullets +
		w.Stuffing*(1-0.5*p.KeywordStuffingRatio) +
		w.Timeline*timeline

	return clamp01(score)
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
