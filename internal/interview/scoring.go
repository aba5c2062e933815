package interview

import (
	"fmt"
	"math"
	"strings"

	"intervai/internal/models"
)

// Verdict labels shared by the heuristic scorer and upstream judgments.
const (
	VerdictCorrect          = "Correct"
	VerdictPartiallyCorrect = "Partially Correct"
	VerdictIncorrect        = "Incorrect"
)

// weakScoreThreshold is the normalized score below which an answer flags a
// weak area for the end-of-session summary.
const weakScoreThreshold = 8

const improvementTip = "Study core concepts; practice with real examples; focus on clarity and completeness."

// NormalizeScore maps a provider-reported score onto the canonical 1-10
// scale. Providers reporting on 0-100 are divided by ten and rounded; the
// result is clamped to [1, 10] regardless of source scale.
func NormalizeScore(raw float64) int {
	if raw > 10 {
		raw = math.Round(raw / 10)
	} else {
		raw = math.Round(raw)
	}
	if raw < 1 {
		return 1
	}
	if raw > 10 {
		return 10
	}
	return int(raw)
}

// minimumAnswerWords is the heuristic scorer's cutoff for an answer that is
// too short to be judged at all.
const minimumAnswerWords = 3

// answerWordCount counts the substantive words in an answer. One-letter
// tokens ("I", "a") carry no content and are ignored, so dismissive answers
// like "I don't know" count as two words and fall below the cutoff.
func answerWordCount(answer string) int {
	n := 0
	for _, w := range strings.Fields(answer) {
		if len(w) >= 2 {
			n++
		}
	}
	return n
}

// HeuristicJudge scores an answer locally, with no upstream call, directly
// on the 1-10 scale. It backs offline/demo sessions.
func HeuristicJudge(question, answer, domain string) models.Judgment {
	words := answerWordCount(answer)
	var score int
	if words < minimumAnswerWords {
		score = 1
	} else {
		score = 5 + max(0, words-8)/2
		if score > 10 {
			score = 10
		}
	}

	var verdict string
	switch {
	case score >= 8:
		verdict = VerdictCorrect
	case score >= 5:
		verdict = VerdictPartiallyCorrect
	default:
		verdict = VerdictIncorrect
	}

	var feedback []string
	if words < minimumAnswerWords {
		feedback = append(feedback, "Your answer seems too short or incomplete. Please provide more detail and address the question directly.")
	}
	if score >= 8 {
		feedback = append(feedback, "Good structure and clarity.")
	} else {
		feedback = append(feedback, "Decent attempt; add more detail and examples.")
	}
	feedback = append(feedback, "Provide real-world examples to strengthen your answer.")

	if domain == "" {
		domain = "your field"
	}
	modelAnswer := fmt.Sprintf(
		"A strong answer to %q would cover: a clear definition, key concepts, trade-offs, a concise real-world example, and best practices related to %s.",
		question, domain,
	)

	return models.Judgment{
		Score:       score,
		Verdict:     verdict,
		Feedback:    strings.Join(feedback, " "),
		ModelAnswer: modelAnswer,
	}
}
