package ollama

import (
	"testing"
)

func TestDecodeSummaryPayload(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "full structure",
			raw:       `{"title":"Notes","formal_text":"Formal.","summary":"- a\n- b"}`,
			wantTitle: "Notes",
			wantBody:  "Formal.\n\n## Summary\n\n- a\n- b",
		},
		{
			name:      "code fenced",
			raw:       "```json\n{\"title\":\"Fenced\",\"formal_text\":\"Body.\"}\n```",
			wantTitle: "Fenced",
			wantBody:  "Body.",
		},
		{
			name:      "summary as list",
			raw:       `{"title":"List","formal_text":"Formal.","summary":["first","second"]}`,
			wantTitle: "List",
			wantBody:  "Formal.\n\n## Summary\n\nfirst\nsecond",
		},
		{
			name:      "escaped single quotes",
			raw:       `{"title":"It\'s Fine","formal_text":"Don\'t worry."}`,
			wantTitle: "It's Fine",
			wantBody:  "Don't worry.",
		},
		{
			name:      "body key fallback",
			raw:       `{"title":"Alt","body":"alternate body"}`,
			wantTitle: "Alt",
			wantBody:  "alternate body",
		},
		{
			name:      "transcript fallback",
			raw:       `{"language":"English"}`,
			wantTitle: "Untitled Note",
			wantBody:  "the original transcript",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := decodeSummaryPayload(tc.raw, "the original transcript")
			if err != nil {
				t.Fatalf("decodeSummaryPayload: %v", err)
			}
			if summary.Title != tc.wantTitle {
				t.Errorf("title = %q, want %q", summary.Title, tc.wantTitle)
			}
			if summary.Body != tc.wantBody {
				t.Errorf("body = %q, want %q", summary.Body, tc.wantBody)
			}
		})
	}
}

func TestDecodeSummaryPayloadRejectsProse(t *testing.T) {
	if _, err := decodeSummaryPayload("just some prose, no JSON", "t"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStripCodeFences(t *testing.T) {
	if got := stripCodeFences("```json\n{\"a\":1}\n```"); got != `{"a":1}` {
		t.Errorf("fenced json = %q", got)
	}
	if got := stripCodeFences(`{"a":1}`); got != `{"a":1}` {
		t.Errorf("plain json = %q", got)
	}
}
