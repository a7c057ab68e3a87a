package formatting_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/callil/tax-ui/pkg/formatting"
)

type sample struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type tag struct {
	Page int    `json:"page"`
	Type string `json:"type"`
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sample
	}{
		{"direct", `{"name":"test","value":42}`, sample{"test", 42}},
		{"padded", `  {"name":"padded","value":1}  `, sample{"padded", 1}},
		{"fenced", "```json\n{\"name\":\"fenced\",\"value\":7}\n```", sample{"fenced", 7}},
		{"fenced bare", "```\n{\"name\":\"bare\",\"value\":3}\n```", sample{"bare", 3}},
		{"fenced in prose", "Here is the result:\n```json\n{\"name\":\"wrapped\",\"value\":5}\n```\nDone.", sample{"wrapped", 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.Parse[sample](tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse = %+v, want %+v", got, tt.want)
			}
		})
	}

	for _, input := range []string{"", "not json at all", "```json\n{broken\n```"} {
		if _, err := formatting.Parse[sample](input); !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("Parse(%q) error = %v, want ErrParseFailed", input, err)
		}
	}
}

func TestParseArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tag
	}{
		{
			name:  "wrapped in commentary",
			input: "Here is the result:\n[{\"page\":1,\"type\":\"schedule_c\"}]\nThanks!",
			want:  []tag{{1, "schedule_c"}},
		},
		{
			name:  "bare array",
			input: `[{"page":1,"type":"form_1040"},{"page":2,"type":"w2"}]`,
			want:  []tag{{1, "form_1040"}, {2, "w2"}},
		},
		{
			name:  "fenced",
			input: "```json\n[{\"page\":3,\"type\":\"other\"}]\n```",
			want:  []tag{{3, "other"}},
		},
		{
			name:  "brackets inside strings",
			input: `Result: [{"page":1,"type":"other [continued]"}]`,
			want:  []tag{{1, "other [continued]"}},
		},
		{
			name:  "trailing bracketed note",
			input: "[{\"page\":1,\"type\":\"w2\"}]\n[note: page 2 was blank]",
			want:  []tag{{1, "w2"}},
		},
		{
			name:  "leading bracketed note",
			input: "[draft] pages follow: [{\"page\":4,\"type\":\"form_8949\"}]",
			want:  []tag{{4, "form_8949"}},
		},
		{
			name:  "empty array in leading prose",
			input: "No pages were skipped []. Result:\n[{\"page\":1,\"type\":\"schedule_c\"}]",
			want:  []tag{{1, "schedule_c"}},
		},
		{
			name:  "null element in leading prose",
			input: "Result [null]:\n[{\"page\":2,\"type\":\"schedule_c\"}]",
			want:  []tag{{2, "schedule_c"}},
		},
		{
			name:  "sparse array only",
			input: "Partial: [{}]",
			want:  []tag{{}},
		},
		{
			name:  "empty array",
			input: "No pages found: []",
			want:  []tag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseArray[tag](tt.input)
			if err != nil {
				t.Fatalf("ParseArray error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%+v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseArrayFailures(t *testing.T) {
	inputs := map[string]string{
		"no brackets": "I could not read this document.",
		"unterminated": `[{"page":1,"type":"w2"}`,
		"malformed":   `[{"page":1,"type":}]`,
		"empty":       "",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := formatting.ParseArray[tag](input)
			if !errors.Is(err, formatting.ErrParseFailed) {
				t.Errorf("error = %v, want ErrParseFailed", err)
			}
		})
	}
}

func TestParseObject(t *testing.T) {
	input := "Sure, extracted values:\n{\"name\":\"return\",\"value\":2024}\nLet me know if {anything} else."
	got, err := formatting.ParseObject[sample](input)
	if err != nil {
		t.Fatalf("ParseObject error: %v", err)
	}
	if got.Name != "return" || got.Value != 2024 {
		t.Errorf("ParseObject = %+v", got)
	}

	if _, err := formatting.ParseObject[sample]("nothing here"); !errors.Is(err, formatting.ErrParseFailed) {
		t.Errorf("error = %v, want ErrParseFailed", err)
	}
}

func TestSpans(t *testing.T) {
	got := formatting.Spans(`a [1, [2]] b [3]`, '[', ']')
	want := []string{"[1, [2]]", "[2]", "[3]", "[1, [2]] b [3]"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Spans = %q, want %q", got, want)
	}

	if got := formatting.Spans("none", '[', ']'); got != nil {
		t.Errorf("Spans(none) = %q, want nil", got)
	}
}

func TestParseErrorTruncatesEcho(t *testing.T) {
	_, err := formatting.ParseArray[tag](strings.Repeat("x", 1000))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 300 {
		t.Errorf("error message length = %d, want truncated", len(err.Error()))
	}
}

func FuzzParseArray(f *testing.F) {
	f.Add("Here is the result:\n[{\"page\":1,\"type\":\"schedule_c\"}]\nThanks!")
	f.Add(`[{"page":1,"type":"other [x]"}] [y]`)
	f.Add(`["\"]"]`)
	f.Add("[[[")

	f.Fuzz(func(t *testing.T, input string) {
		got, err := formatting.ParseArray[tag](input)
		if err != nil && !errors.Is(err, formatting.ErrParseFailed) {
			t.Fatalf("unexpected error type: %v", err)
		}
		if err == nil && got == nil {
			t.Fatal("nil slice without error")
		}
	})
}
