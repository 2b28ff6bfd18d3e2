package ollama

import (
	"fmt"
	"strings"
)

// summarizePromptTemplate instructs the model to answer in the transcript's
// own language and to respond with a single JSON object. The shape matters:
// the decoder expects title/formal_text/summary keys.
const summarizePromptTemplate = `
You are an expert AI assistant. Your task is to rewrite and summarize the given transcript.

CRITICAL INSTRUCTION:
1. Detect the dominant language of the transcript.
2. Generate the "title", "formal_text", and "summary" in that EXACT SAME LANGUAGE.
3. Do NOT translate the content into English or any other language.

Example:
- If transcript is Spanish -> Title, Formal Text, and Summary must be in Spanish.
- If transcript is English -> Title, Formal Text, and Summary must be in English.

Return a JSON object with:
- "language": The detected language (e.g., "English", "Spanish").
- "title": A short descriptive title in the detected language.
- "formal_text": The rewritten formal text in the detected language.
- "summary": A bulleted summary in the detected language (as a single string with newlines).

Transcript:
"""%s"""

Respond with ONLY valid JSON, no extra commentary.
`

func buildSummarizePrompt(transcript string) string {
	return strings.TrimSpace(fmt.Sprintf(summarizePromptTemplate, transcript))
}
