package fsexec

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnusableTempDir is returned by New when the requested staging
// directory's parent does not exist, or the directory itself cannot be
// created.
var ErrUnusableTempDir = errors.New("fsexec: unusable temporary directory")

// errorf formats an error, honoring %w to preserve a sentinel for
// errors.Is, and prefixes it with the originating method. fmt.Errorf
// (not errors.Errorf, which does not understand %w) does the actual
// formatting; errors.WithMessage layers on the method name without
// dropping the %w chain.
func errorf(method, format string, args ...interface{}) error {
	return errors.WithMessage(fmt.Errorf(format, args...), "fsexec."+method)
}
