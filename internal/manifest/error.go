package manifest

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingHeader is returned when the manifest lacks a "# ViFi@..."
	// first line.
	ErrMissingHeader = errors.New("manifest: missing or malformed header line")
	// ErrMalformedLine is returned for entry lines that cannot be parsed:
	// missing tab separator, non-hex id, or id 0 on an entry line.
	ErrMalformedLine = errors.New("manifest: malformed entry line")
	// ErrDuplicatePath is returned when two entry lines name the same path.
	ErrDuplicatePath = errors.New("manifest: duplicate path")
)

// errorf formats an error, honoring %w to preserve a sentinel for
// errors.Is, and prefixes it with the originating method. fmt.Errorf
// (not errors.Errorf, which does not understand %w) does the actual
// formatting; errors.WithMessage layers on the method name without
// dropping the %w chain.
func errorf(method, format string, args ...interface{}) error {
	return errors.WithMessage(fmt.Errorf(format, args...), "manifest."+method)
}
