package models

type GenerateFlashcardsRequest struct {
	Text     string `json:"text" validate:"required"`
	NumCards int    `json:"numCards" validate:"omitempty,min=1,max=30"`
}

type FlashcardSet struct {
	Flashcards []Flashcard `json:"flashcards"`
	Degraded   bool        `json:"degraded,omitempty"`
}

type Flashcard struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"` // "easy" | "medium" | "hard"
	Tags       []string `json:"tags"`
}
