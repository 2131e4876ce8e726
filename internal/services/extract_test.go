package services

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExtractJSON_CleanPayloads(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"bare array", `[{"a":1},{"b":2}]`, `[{"a":1},{"b":2}]`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without language", "```\n[1,2,3]\n```", `[1,2,3]`},
		{"leading prose", `Here is your quiz: {"a":1}`, `{"a":1}`},
		{"trailing prose", `{"a":1} — hope this helps!`, `{"a":1}`},
		{"prose both sides", `Sure! {"a":{"b":2}} Let me know.`, `{"a":{"b":2}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSON(tc.input)
			if !ok {
				t.Fatalf("Expected ok for %q", tc.input)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractJSON_NoPayload(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"refusal text", "I cannot help with that"},
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
		{"brace with no structure", "use { and } carefully"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := ExtractJSON(tc.input); ok {
				t.Errorf("Expected no payload, got %q", got)
			}
		})
	}
}

func TestExtractJSON_RawControlCharacters(t *testing.T) {
	got, ok := ExtractJSON("{\"a\":\"line1\nline2\ttabbed\"}")
	if !ok {
		t.Fatal("Expected ok")
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("Expected valid JSON, got %q", got)
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if parsed["a"] != "line1\nline2\ttabbed" {
		t.Errorf("Expected escaped newline and tab preserved, got %q", parsed["a"])
	}
}

func TestExtractJSON_TruncatedResponse(t *testing.T) {
	input := `{"questions":[{"id":"q_1","question":"A?","correctAnswer":1},{"id":"q_2","question":"B`
	got, ok := ExtractJSON(input)
	if !ok {
		t.Fatal("Expected truncated payload to be repaired")
	}

	var parsed struct {
		Questions []map[string]interface{} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("Repaired payload does not parse: %v", err)
	}
	if len(parsed.Questions) != 1 {
		t.Errorf("Expected 1 complete question, got %d", len(parsed.Questions))
	}
	if parsed.Questions[0]["id"] != "q_1" {
		t.Errorf("Expected q_1 to survive, got %v", parsed.Questions[0]["id"])
	}
}

func TestExtractJSON_TruncatedArray(t *testing.T) {
	input := `[{"question":"Q1","answer":"A1"},{"question":"Q2","ans`
	got, ok := ExtractJSON(input)
	if !ok {
		t.Fatal("Expected truncated array to be repaired")
	}

	var cards []map[string]string
	if err := json.Unmarshal([]byte(got), &cards); err != nil {
		t.Fatalf("Repaired payload does not parse: %v", err)
	}
	if len(cards) != 1 || cards[0]["question"] != "Q1" {
		t.Errorf("Expected the first complete card, got %v", cards)
	}
}

func TestExtractJSON_OutputAlwaysValid(t *testing.T) {
	inputs := []string{
		`{"a":1}`,
		"```json\n{\"a\":\"x\ny\"}\n```",
		`text before [1,2,3] text after`,
		`{"a":[{"b":1},{"c":`,
	}
	for _, in := range inputs {
		got, ok := ExtractJSON(in)
		if !ok {
			t.Fatalf("Expected ok for %q", in)
		}
		if !json.Valid([]byte(got)) {
			t.Errorf("Output not valid JSON for input %q: %q", in, got)
		}
	}
}

func TestExtractJSON_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":\"line1\nline2\"}\n```",
		`prose {"b":[1,2,{"c":"d"}]} more prose`,
		`{"questions":[{"id":"q_1"},{"id":"q`,
	}
	for _, in := range inputs {
		first, ok := ExtractJSON(in)
		if !ok {
			t.Fatalf("Expected ok for %q", in)
		}
		second, ok := ExtractJSON(first)
		if !ok {
			t.Fatalf("Expected ok on second pass for %q", first)
		}
		if first != second {
			t.Errorf("Expected idempotent extraction, got %q then %q", first, second)
		}
	}
}

func TestSanitizeJSON_OutsideStrings(t *testing.T) {
	got := sanitizeJSON("{\n\t\"a\": 1\n}")
	if strings.ContainsAny(got, "\n\t") {
		t.Errorf("Expected control characters replaced outside strings, got %q", got)
	}
	if !json.Valid([]byte(got)) {
		t.Errorf("Expected valid JSON, got %q", got)
	}
}
