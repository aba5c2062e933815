package provider

import (
	"strings"
	"testing"
)

func TestParseJudgment(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantScore   float64
		wantVerdict string
	}{
		{
			name:        "bare json object",
			input:       `{"score": 85, "verdict": "Correct", "feedback": "Solid.", "correct_answer": "It depends."}`,
			wantScore:   85,
			wantVerdict: "Correct",
		},
		{
			name:        "json inside markdown fence",
			input:       "```json\n{\"score\": 40, \"verdict\": \"Incorrect\", \"feedback\": \"Off topic.\"}\n```",
			wantScore:   40,
			wantVerdict: "Incorrect",
		},
		{
			name:        "json surrounded by prose",
			input:       "Here is my evaluation: {\"score\": 70, \"verdict\": \"Partially Correct\", \"feedback\": \"Missing detail.\"} Hope that helps!",
			wantScore:   70,
			wantVerdict: "Partially Correct",
		},
		{
			name:        "score encoded as string",
			input:       `{"score": "60", "verdict": "Partially Correct", "feedback": "ok"}`,
			wantScore:   60,
			wantVerdict: "Partially Correct",
		},
		{
			name:        "free text degrades to neutral placeholder",
			input:       "The answer shows a reasonable grasp of the topic but lacks depth.",
			wantScore:   neutralScore,
			wantVerdict: "Partially Correct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := parseJudgment(tt.input)
			if j.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", j.Score, tt.wantScore)
			}
			if j.Verdict != tt.wantVerdict {
				t.Errorf("verdict = %q, want %q", j.Verdict, tt.wantVerdict)
			}
		})
	}
}

func TestParseJudgmentFreeTextBecomesFeedback(t *testing.T) {
	text := "A thoughtful but unstructured evaluation of the answer."
	j := parseJudgment(text)
	if j.Feedback != text {
		t.Errorf("feedback = %q, want raw text", j.Feedback)
	}
}

func TestParseJudgmentTruncatesLongFreeText(t *testing.T) {
	j := parseJudgment(strings.Repeat("x", 1000))
	if len(j.Feedback) != 400 {
		t.Errorf("feedback length = %d, want 400", len(j.Feedback))
	}
}

func TestParseJudgmentMissingFields(t *testing.T) {
	j := parseJudgment(`{"score": 55}`)
	if j.Verdict != "Unknown" {
		t.Errorf("verdict = %q, want Unknown", j.Verdict)
	}
	if j.Feedback != "No feedback provided." {
		t.Errorf("feedback = %q", j.Feedback)
	}
}
