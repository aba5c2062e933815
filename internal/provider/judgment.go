package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const evaluatorSystemPrompt = "You are an expert interviewer. Score answers 0-100, provide concise feedback and a clear verdict (Correct/Partially Correct/Incorrect)."

// neutralScore is the placeholder (0-100 scale) used when a successful
// response carries no parsable judgment. Sitting mid-scale, it neither
// rewards nor punishes an answer the provider failed to judge.
const neutralScore = 50

// generationMaxTokens bounds question/followup generation responses.
const generationMaxTokens = 256

func evaluationPrompt(question, answer string) string {
	return fmt.Sprintf(
		"You are an expert interviewer. Read the question and answer and return ONLY a JSON object with keys: "+
			"score (0-100 number), verdict (Correct/Partially Correct/Incorrect), feedback (concise string), correct_answer (string).\n\n"+
			"Question: %s\nAnswer: %s\n"+
			"If the answer is empty, too short, or off-topic, set score to 0 and provide a concise, authoritative model answer in correct_answer.",
		question, answer,
	)
}

// parseJudgment extracts a structured judgment from model output. It accepts
// a bare JSON object, JSON inside a markdown fence or surrounding prose, and
// score values encoded as numbers or strings. When nothing parses, it
// degrades to free text: the raw output becomes the feedback, with the
// neutral placeholder score.
func parseJudgment(text string) Judgment {
	for _, candidate := range jsonCandidates(text) {
		var raw map[string]any
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			continue
		}
		j := Judgment{
			Score:       coerceScore(raw["score"]),
			Verdict:     stringField(raw, "verdict", "Unknown"),
			Feedback:    stringField(raw, "feedback", "No feedback provided."),
			ModelAnswer: stringField(raw, "correct_answer", ""),
		}
		return j
	}

	feedback := strings.TrimSpace(text)
	if len(feedback) > 400 {
		feedback = feedback[:400]
	}
	if feedback == "" {
		feedback = "Could not parse structured feedback."
	}
	return Judgment{
		Score:    neutralScore,
		Verdict:  "Partially Correct",
		Feedback: feedback,
	}
}

// jsonCandidates yields substrings of the output worth attempting as JSON:
// the text as-is, then the outermost brace-delimited block.
func jsonCandidates(text string) []string {
	trimmed := strings.TrimSpace(text)
	candidates := []string{trimmed}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			candidates = append(candidates, trimmed[start:end+1])
		}
	}
	return candidates
}

func coerceScore(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

func stringField(raw map[string]any, key, fallback string) string {
	if s, ok := raw[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
