package nlp

import (
	"testing"
)

func TestRemoveThinkTags(t *testing.T) {
	in := "<think>reasoning about dates\nmore reasoning</think>{\"a\": 1}"
	if got := RemoveThinkTags(in); got != `{"a": 1}` {
		t.Errorf("RemoveThinkTags = %q", got)
	}
}

func TestExtractJSONFromResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding prose", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"array", `The result is [1, 2, 3].`, `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONFromResponse(tt.in); got != tt.want {
				t.Errorf("ExtractJSONFromResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnmarshalLLMJSON(t *testing.T) {
	type out struct {
		Constraints []string `json:"constraints"`
	}

	var v out
	if err := UnmarshalLLMJSON(`{"constraints": ["a", "b"]}`, &v); err != nil {
		t.Fatalf("clean JSON failed: %v", err)
	}
	if len(v.Constraints) != 2 {
		t.Errorf("Constraints = %v", v.Constraints)
	}

	// Trailing comma is repaired rather than rejected.
	var v2 out
	if err := UnmarshalLLMJSON(`{"constraints": ["a", "b",]}`, &v2); err != nil {
		t.Fatalf("repairable JSON failed: %v", err)
	}
	if len(v2.Constraints) != 2 {
		t.Errorf("Constraints = %v", v2.Constraints)
	}
}

func TestUnmarshalLLMJSONRejectsProse(t *testing.T) {
	var v struct{}
	if err := UnmarshalLLMJSON("I have no idea, sorry!", &v); err == nil {
		t.Error("expected error for non-JSON prose")
	}
}
