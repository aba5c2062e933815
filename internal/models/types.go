package models

// Level is a question difficulty level.
type Level string

const (
	LevelBasic  Level = "basic"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

func (l Level) IsValid() bool {
	return l == LevelBasic || l == LevelMedium || l == LevelHard
}

// Category is the pedagogical type of an interview question.
type Category string

const (
	CategoryConceptual Category = "conceptual"
	CategoryPractical  Category = "practical"
	CategoryScenario   Category = "scenario"
	CategoryCoding     Category = "coding"
	CategoryBehavioral Category = "behavioral"
)

// Categories lists every category in a fixed iteration order. Weighted
// selection and tie-breaking depend on this order being stable.
var Categories = []Category{
	CategoryConceptual,
	CategoryPractical,
	CategoryScenario,
	CategoryCoding,
	CategoryBehavioral,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// QAPair is one answered question in a session's history.
type QAPair struct {
	Question    string `json:"question"`
	UserAnswer  string `json:"userAnswer"`
	Score       int    `json:"score"` // normalized 1-10
	Verdict     string `json:"verdict"`
	Feedback    string `json:"feedback"`
	ModelAnswer string `json:"modelAnswer"`
}

// WeakArea records a question the candidate scored poorly on, with a tip.
type WeakArea struct {
	Question       string `json:"question"`
	ImprovementTip string `json:"improvementTip"`
}

// Judgment is the evaluation of one answer, on the canonical 1-10 scale.
type Judgment struct {
	Score       int    `json:"score"`
	Verdict     string `json:"verdict"`
	Feedback    string `json:"feedback"`
	ModelAnswer string `json:"modelAnswer"`
}

// Summary is the end-of-session report.
type Summary struct {
	SessionID    string                `json:"sessionId"`
	Subject      string                `json:"subject"`
	OverallScore float64               `json:"overallScore"`
	WeakAreas    map[string][]WeakArea `json:"weakAreas"`
	History      []QAPair              `json:"history"`
}

// StartRequest is the payload for POST /interview/start.
type StartRequest struct {
	Provider   string `json:"provider"`
	APIKey     string `json:"apiKey"`
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	Model      string `json:"model,omitempty"`
}

// StartResponse is returned from POST /interview/start.
type StartResponse struct {
	SessionID  string `json:"sessionId"`
	Provider   string `json:"provider"`
	Domain     string `json:"domain"`
	Model      string `json:"model"`
	Difficulty Level  `json:"difficulty"`
}

// SessionRequest addresses an existing session.
type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

// QuestionResponse is returned from question and followup operations.
type QuestionResponse struct {
	Question   string   `json:"question"`
	Difficulty Level    `json:"difficulty"`
	Category   Category `json:"category"`
}

// AnswerRequest is the payload for POST /interview/answer.
type AnswerRequest struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}

// RestoreResponse returns live-session metadata for client state recovery.
type RestoreResponse struct {
	SessionID string `json:"sessionId"`
	Provider  string `json:"provider"`
	Domain    string `json:"domain"`
	Model     string `json:"model"`
}

// ArchivedInterview is one completed interview as stored in the archive.
type ArchivedInterview struct {
	ID           string  `json:"id"`
	Domain       string  `json:"domain"`
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	OverallScore float64 `json:"overallScore"`
	Questions    int     `json:"questions"`
	EndedAt      int64   `json:"endedAt"`
}
