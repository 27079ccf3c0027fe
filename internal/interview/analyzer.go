package interview

import (
	"strings"

	"github.com/serenity-hq/screener/internal/catalog"
)

// Answer quality issues emitted by Analyze.
const (
	IssueTooShort = "too_short"
	IssueVague    = "vague"
)

// PlaceholderAnswer is sent by the capture layer when only audio metadata,
// not a literal transcript, was recorded for a turn.
const PlaceholderAnswer = "[AUDIO_RESPONSE]"

// placeholderShortChance simulates answer-quality noise for placeholder
// turns, where no text is available to inspect.
const placeholderShortChance = 0.15

// Connective and exemplifying language. Answers of sufficient length that
// contain none of these read as unsupported claims.
var connectives = []string{
	"because", "since", "for example", "for instance", "such as",
	"so that", "which meant", "as a result", "that's why", "due to",
}

// Analysis is the turn analyzer's verdict on a single answer.
type Analysis struct {
	NeedsFollowup bool     `json:"needs_followup"`
	Issues        []string `json:"detected_issues"`
}

// Analyze inspects a candidate answer and flags quality issues. It is a pure
// function of the text except for placeholder answers, whose simulated noise
// comes from the injected rng.
func Analyze(answer string, shortAnswerWords int, rng catalog.Rand) Analysis {
	if answer == PlaceholderAnswer {
		if rng != nil && rng.Float64() < placeholderShortChance {
			return Analysis{NeedsFollowup: true, Issues: []string{IssueTooShort}}
		}
		return Analysis{}
	}

	words := len(strings.Fields(answer))

	var issues []string
	if words < shortAnswerWords {
		issues = append(issues, IssueTooShort)
	} else if !hasConnective(answer) {
		issues = append(issues, IssueVague)
	}

	return Analysis{NeedsFollowup: len(issues) > 0, Issues: issues}
}

func hasConnective(answer string) bool {
	lower := strings.ToLower(answer)
	for _, c := range connectives {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}
