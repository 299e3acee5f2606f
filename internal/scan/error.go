package scan

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotADirectory is returned when the scan root exists but is not a
// directory.
var ErrNotADirectory = errors.New("scan: not a directory")

// errorf formats an error, honoring %w to preserve a sentinel for
// errors.Is, and prefixes it with the originating method. fmt.Errorf
// (not errors.Errorf, which does not understand %w) does the actual
// formatting; errors.WithMessage layers on the method name without
// dropping the %w chain.
func errorf(method, format string, args ...interface{}) error {
	return errors.WithMessage(fmt.Errorf(format, args...), "scan."+method)
}
