package models

type GenerateQuizRequest struct {
	Text         string `json:"text" validate:"required"`
	NumQuestions int    `json:"numQuestions" validate:"omitempty,min=1,max=30"`
	Difficulty   string `json:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
}

type QuizResult struct {
	Questions []QuizQuestion `json:"questions"`
	Degraded  bool           `json:"degraded,omitempty"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"` // always exactly 4
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"` // "easy" | "medium" | "hard"
	Category      string   `json:"category"`
}
