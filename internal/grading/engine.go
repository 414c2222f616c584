package grading

import (
	"math"
	"strconv"
	"strings"
)

// DefaultOverlapThreshold is the share of a reference keyword's distinct
// characters that a user keyword must contain (strictly more than) to count
// as a match.
const DefaultOverlapThreshold = 0.6

// Rule names the decision step that produced a score.
type Rule string

const (
	RuleEmptyAnswer Rule = "empty_answer"
	RuleNoReference Rule = "no_reference"
	RuleExact       Rule = "exact"
	RuleCompact     Rule = "compact"
	RuleNoKeywords  Rule = "no_keywords"
	RuleKeywords    Rule = "keywords"
)

// Result is the outcome of scoring one answer.
type Result struct {
	Score     float64  `json:"score"`
	Rule      Rule     `json:"rule"`
	MatchRate float64  `json:"match_rate,omitempty"`
	Matched   []string `json:"matched,omitempty"` // reference keywords found in the answer
	Missed    []string `json:"missed,omitempty"`
}

// tier maps a minimum match rate to a score. Ordered highest first.
type tier struct {
	minRate float64
	score   float64
}

var tiers = []tier{
	{0.8, 100},
	{0.6, 95},
	{0.5, 85},
	{0.4, 75},
	{0.3, 65},
	{0.2, 50},
}

const (
	floorScore      = 30
	attemptedScore  = 60
	shortScore      = 40
	attemptMinRunes = 5
)

// Scorer computes lenient similarity scores. It holds no mutable state and
// may be shared between goroutines.
type Scorer struct {
	overlap float64
}

// Engine options

type Option func(*config)

type config struct {
	OverlapThreshold float64
}

func WithOverlapThreshold(t float64) Option { return func(c *config) { c.OverlapThreshold = t } }

// NewScorer returns a Scorer using DefaultOverlapThreshold unless overridden.
func NewScorer(opts ...Option) *Scorer {
	cfg := &config{OverlapThreshold: DefaultOverlapThreshold}
	for _, o := range opts {
		o(cfg)
	}
	return &Scorer{overlap: cfg.OverlapThreshold}
}

var defaultScorer = NewScorer()

// Score scores user against reference with the default Scorer.
func Score(user, reference string) float64 {
	return defaultScorer.Score(user, reference)
}

// Score maps a free-text answer and a reference answer to [0, 100].
func (s *Scorer) Score(user, reference string) float64 {
	return s.Explain(user, reference).Score
}

// Explain is Score plus the rule that decided it and, for keyword matching,
// which reference keywords were found.
func (s *Scorer) Explain(user, reference string) Result {
	if trimSpace(user) == "" {
		return Result{Score: 0, Rule: RuleEmptyAnswer}
	}
	if trimSpace(reference) == "" {
		return Result{Score: attemptScore(trimSpace(user)), Rule: RuleNoReference}
	}

	u := fold(user)
	c := fold(reference)
	if u == c {
		return Result{Score: 100, Rule: RuleExact}
	}
	if compact(u) == compact(c) {
		return Result{Score: 100, Rule: RuleCompact}
	}

	correctWords := keywords(c)
	userWords := keywords(u)
	if len(correctWords) == 0 {
		return Result{Score: attemptScore(u), Rule: RuleNoKeywords}
	}

	res := Result{Rule: RuleKeywords}
	for _, cw := range correctWords {
		if s.matchesAny(cw, userWords) {
			res.Matched = append(res.Matched, cw)
		} else {
			res.Missed = append(res.Missed, cw)
		}
	}
	res.MatchRate = float64(len(res.Matched)) / float64(len(correctWords))
	res.Score = rateScore(res.MatchRate)
	return res
}

func (s *Scorer) matchesAny(cw string, userWords []string) bool {
	for _, uw := range userWords {
		if strings.Contains(uw, cw) || strings.Contains(cw, uw) || charOverlap(cw, uw) > s.overlap {
			return true
		}
	}
	return false
}

func attemptScore(answer string) float64 {
	if runeLen(answer) > attemptMinRunes {
		return attemptedScore
	}
	return shortScore
}

func rateScore(rate float64) float64 {
	for _, t := range tiers {
		if rate >= t.minRate {
			return t.score
		}
	}
	return math.Max(floorScore, math.Floor(rate*100))
}

// Round2 rounds a score to two decimal places. Ties on the exact binary
// value go to the even digit.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
