package models

// Detail levels for summary generation.
const (
	LevelBrief    = "brief"
	LevelModerate = "moderate"
	LevelDetailed = "detailed"
)

type GenerateSummaryRequest struct {
	Text  string `json:"text" validate:"required"`
	Level string `json:"level" validate:"omitempty,oneof=brief moderate detailed"`
}

// SummaryResult is the fully populated response for a summary request.
// Every field is guaranteed present and well typed after normalization;
// the frontend indexes into these without checks.
type SummaryResult struct {
	Summary    string      `json:"summary"`
	Objectives []Objective `json:"objectives"`
	KeyPoints  []KeyPoint  `json:"keyPoints"`
	Insights   Insights    `json:"insights"`
	Degraded   bool        `json:"degraded,omitempty"`
}

type Objective struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Importance    string   `json:"importance"` // "high" | "medium" | "low"
	EstimatedTime int      `json:"estimatedTime"`
	SubObjectives []string `json:"subObjectives"`
	Prerequisites []string `json:"prerequisites"`
}

type KeyPoint struct {
	ID                string   `json:"id"`
	Content           string   `json:"content"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"` // "basic" | "intermediate" | "advanced"
	RelatedConcepts   []string `json:"relatedConcepts"`
	Explanation       string   `json:"explanation"`
	Examples          []string `json:"examples"`
	PracticeQuestions []string `json:"practiceQuestions"`
}

type Insights struct {
	Difficulty        string       `json:"difficulty"` // "easy" | "medium" | "hard"
	EstimatedReadTime int          `json:"estimatedReadTime"`
	KeyConcepts       []string     `json:"keyConcepts"`
	Recommendations   []string     `json:"recommendations"`
	Strengths         []string     `json:"strengths"`
	Improvements      []string     `json:"improvements"`
	LearningPath      LearningPath `json:"learningPath"`
	Assessment        Assessment   `json:"assessment"`
	Resources         Resources    `json:"resources"`
}

type LearningPath struct {
	Beginner     []string `json:"beginner"`
	Intermediate []string `json:"intermediate"`
	Advanced     []string `json:"advanced"`
}

type Assessment struct {
	KnowledgeCheck   []string `json:"knowledgeCheck"`
	PracticalTasks   []string `json:"practicalTasks"`
	CriticalThinking []string `json:"criticalThinking"`
}

type Resources struct {
	AdditionalReading []string `json:"additionalReading"`
	Tools             []string `json:"tools"`
	Communities       []string `json:"communities"`
}
