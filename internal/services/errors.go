package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks input rejected before any work started.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks a collaborator missing credentials or settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a lookup for an unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrUpstream marks an unreachable backend or a non-success response.
	ErrUpstream = errors.New("upstream error")
	// ErrParse marks collaborator output that could not be interpreted.
	ErrParse = errors.New("parse error")
	// ErrExternalTool marks a failure in a shelled-out binary.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUpstream
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Message extracts the operator-facing text recorded on a failed job. It
// strips the leading sentinel marker so the stored message reads naturally.
func Message(err error) string {
	if err == nil {
		return ""
	}
	text := strings.TrimSpace(err.Error())
	for _, marker := range []error{ErrValidation, ErrConfiguration, ErrNotFound, ErrUpstream, ErrParse, ErrExternalTool} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return text
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
