// Package pipeline turns a claimed job's audio clips into a publishable
// note: each clip is transcribed, the transcripts are joined, and the
// combined text is summarized into a title and body.
package pipeline
