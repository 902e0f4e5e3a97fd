package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreadableTags marks files whose ID3 frames could not be parsed.
	// Resolution continues with filename-derived data only.
	ErrUnreadableTags = errors.New("unreadable tags")
	// ErrUnresolvedGenre marks files whose genre normalized to the
	// unrecognized sentinel. The file is skipped from relocation.
	ErrUnresolvedGenre = errors.New("unresolved genre")
	// ErrWriteFailed marks rejected tag writes. Relocation still proceeds
	// with the in-memory metadata.
	ErrWriteFailed = errors.New("tag write failed")
	// ErrRelocationFailed marks failed filesystem moves. The file stays at
	// its original path.
	ErrRelocationFailed = errors.New("relocation failed")
	// ErrLookupUnavailable marks an unreachable or disabled external
	// metadata source. Its contribution is treated as absent.
	ErrLookupUnavailable = errors.New("external lookup unavailable")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later outcome classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error should abort the run before any file is
// processed. Per-file markers are never fatal; only configuration and root
// validation problems are.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation)
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
