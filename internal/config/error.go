package config

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnusableBase is returned by Load when the base directory cannot be
// created or accessed.
var ErrUnusableBase = errors.New("config: unusable base directory")

// errorf formats an error, honoring %w to preserve a sentinel for
// errors.Is, and prefixes it with the originating method. fmt.Errorf
// (not errors.Errorf, which does not understand %w) does the actual
// formatting; errors.WithMessage layers on the method name without
// dropping the %w chain.
func errorf(method, format string, args ...interface{}) error {
	return errors.WithMessage(fmt.Errorf(format, args...), "config."+method)
}
