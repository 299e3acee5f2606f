package vifitree

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors, checked with errors.Is against the cause chain built by
// errors.Wrap at call sites. The distinction between ErrInvariant and the
// input-validation errors mirrors the teacher's ErrPhase/ErrInvariant split:
// invariant errors indicate a bug in this package, the others indicate a
// malformed manifest the caller should report to the user.
var (
	// ErrIdConflict is returned when an original-phase entry id is reused.
	ErrIdConflict = errors.New("entry id already in use")
	// ErrInvalidId is returned when an entry id cannot be used as given,
	// e.g. id 0 on a non-root entry line.
	ErrInvalidId = errors.New("invalid entry id")
	// ErrSparseIds is returned by EndOriginal when ids 0..maxID are not
	// each used exactly once.
	ErrSparseIds = errors.New("sparse entry ids in original tree")
	// ErrInvariant indicates a precondition of this package was violated
	// by its own logic, not by caller input.
	ErrInvariant = errors.New("vifitree invariant violated")
)

// errorf formats an error, honoring %w to preserve a sentinel for
// errors.Is, and prefixes it with the originating method. fmt.Errorf
// (not errors.Errorf, which does not understand %w) does the actual
// formatting; errors.WithMessage layers on the method name without
// dropping the %w chain.
func errorf(method, format string, args ...interface{}) error {
	return errors.WithMessage(fmt.Errorf(format, args...), "vifitree."+method)
}
