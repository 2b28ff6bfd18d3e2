// Package whisper shells out to the Whisper CLI to transcribe audio clips.
package whisper
