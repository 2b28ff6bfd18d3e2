// Package services defines the shared error taxonomy and context annotations
// used by the pipeline collaborators (whisper, ollama, notion) and the
// components that report their failures.
package services
