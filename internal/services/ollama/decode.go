package ollama

import (
	"encoding/json"
	"strings"

	"voxlog/internal/services"
)

// summaryPayload tolerates the loose shapes local models actually emit:
// summary may arrive as a string or a list of bullet strings, and some
// models fall back to a plain "body" key.
type summaryPayload struct {
	Title      string          `json:"title"`
	FormalText string          `json:"formal_text"`
	Summary    json.RawMessage `json:"summary"`
	Body       string          `json:"body"`
}

// decodeSummaryPayload extracts (title, body) from the model's raw answer.
// The transcript is the last-resort body when the model returned structure
// but no usable text.
func decodeSummaryPayload(raw, transcript string) (Summary, error) {
	cleaned := stripCodeFences(raw)
	// Escaped single quotes are valid in Python/JS string literals but not
	// JSON; local models emit them constantly.
	cleaned = strings.ReplaceAll(cleaned, `\'`, "'")

	var payload summaryPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Summary{}, services.Wrap(services.ErrParse, "ollama", "parse summary",
			"could not parse model response as JSON: "+snippet(raw), err)
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = "Untitled Note"
	}

	formalText := strings.TrimSpace(payload.FormalText)
	summaryText := decodeSummaryField(payload.Summary)

	var body string
	switch {
	case formalText != "" && summaryText != "":
		body = formalText + "\n\n## Summary\n\n" + summaryText
	case formalText != "":
		body = formalText
	default:
		body = strings.TrimSpace(payload.Body)
		if body == "" {
			body = strings.TrimSpace(transcript)
		}
	}

	return Summary{Title: title, Body: body}, nil
}

func decodeSummaryField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		parts := make([]string, 0, len(asList))
		for _, item := range asList {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func stripCodeFences(value string) string {
	cleaned := strings.TrimSpace(value)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.Trim(cleaned, "`")
	if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
		cleaned = cleaned[4:]
	}
	return strings.TrimSpace(cleaned)
}
