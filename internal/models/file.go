package models

// ProcessedFile is returned by the upload endpoint: the extracted text plus
// lightweight AI-derived metadata the client caches alongside the document.
type ProcessedFile struct {
	ID            string       `json:"id"`
	Filename      string       `json:"filename"`
	Type          string       `json:"type"`
	Size          int64        `json:"size"`
	Content       string       `json:"content"`
	ExtractedText string       `json:"extractedText"`
	Metadata      FileMetadata `json:"metadata"`
	AIInsights    FileInsights `json:"aiInsights"`
}

type FileMetadata struct {
	Pages      int      `json:"pages"`
	WordCount  int      `json:"wordCount"`
	Language   string   `json:"language"`
	Topics     []string `json:"topics"`
	Confidence float64  `json:"confidence"`
}

type FileInsights struct {
	Difficulty        string   `json:"difficulty"` // "easy" | "medium" | "hard"
	EstimatedReadTime int      `json:"estimatedReadTime"`
	KeyConcepts       []string `json:"keyConcepts"`
	Recommendations   []string `json:"recommendations"`
	Degraded          bool     `json:"degraded,omitempty"`
}
