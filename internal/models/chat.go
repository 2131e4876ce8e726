package models

// ChatMessage is a single turn of the conversation history the client keeps
// in local storage and replays with each request.
type ChatMessage struct {
	Type    string `json:"type"` // "user" | "ai"
	Content string `json:"content"`
}

// LectureContext carries the study material the assistant answers about.
type LectureContext struct {
	Filename   string         `json:"filename"`
	Content    string         `json:"content"`
	Summary    string         `json:"summary"`
	KeyPoints  []ChatKeyPoint `json:"keyPoints"`
	Objectives []ChatGoal     `json:"objectives"`
}

type ChatKeyPoint struct {
	Content string `json:"content"`
}

type ChatGoal struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type GenerateChatRequest struct {
	Question string         `json:"question" validate:"required"`
	Lecture  LectureContext `json:"lectureData"`
	History  []ChatMessage  `json:"conversationHistory"`
}

type ChatReply struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Degraded bool   `json:"degraded,omitempty"`
}
