// Package ollama turns raw transcripts into a titled, formalized note body
// using a local Ollama instance.
package ollama
