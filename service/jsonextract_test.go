package service

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"summary": "ok"}`,
			want:  `{"summary": "ok"}`,
		},
		{
			name:  "fenced object",
			input: "Here you go:\n```json\n{\"summary\": \"ok\"}\n```\nDone.",
			want:  `{"summary": "ok"}`,
		},
		{
			name:  "braces inside strings",
			input: `prose {"clause_text": "Section 2 {as amended}", "n": 1} trailing`,
			want:  `{"clause_text": "Section 2 {as amended}", "n": 1}`,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"answer": "the \"Buyer\" shall pay"}`,
			want:  `{"answer": "the \"Buyer\" shall pay"}`,
		},
		{
			name:  "nested objects",
			input: `{"mindmap": {"structure": {"main_sections": []}}}`,
			want:  `{"mindmap": {"structure": {"main_sections": []}}}`,
		},
		{
			name:  "first of several objects",
			input: `{"a": 1} {"b": 2}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "no object",
			input: "I cannot answer that in JSON.",
			want:  "",
		},
		{
			name:  "unbalanced",
			input: `{"a": {"b": 1}`,
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONObject(tt.input); got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
