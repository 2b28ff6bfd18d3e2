// Package logging builds the slog loggers used across voxlog and provides
// the attribute helpers and context field extraction the rest of the code
// logs with.
package logging
