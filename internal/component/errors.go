// Package component defines the sentinel errors shared by the registry,
// reload, manager, and watch packages.
package component

import (
	"errors"
	"fmt"
)

var (
	// ErrUnregistered is returned when a type name has no constructor
	// registered under the requested registry (concrete or interface).
	ErrUnregistered = errors.New("type not registered")

	// ErrWrongType is returned when a constructed instance does not satisfy
	// the interface it was requested under.
	ErrWrongType = errors.New("constructed instance does not satisfy requested type")

	// ErrConfigParseFailed is returned when a component's Options cannot be
	// decoded into its declared Config type.
	ErrConfigParseFailed = errors.New("component config parse failed")

	// ErrConstructionFailed is returned when a registered build function
	// itself returns an error.
	ErrConstructionFailed = errors.New("component construction failed")

	// ErrUnresolvedReference is returned when a Reference names an instance
	// not present in the scratch map or the global sibling manager.
	ErrUnresolvedReference = errors.New("unresolved instance reference")

	// ErrReloadAborted is returned when a reload's diff/build phase fails and
	// the previous instance set is left untouched.
	ErrReloadAborted = errors.New("reload aborted, previous instances retained")

	// ErrWatchError wraps failures from the underlying OS file notification
	// backend.
	ErrWatchError = errors.New("watch error")

	// ErrPipeNotFound is returned by Manager.Get when no instance is
	// registered under the requested name.
	ErrPipeNotFound = errors.New("pipe not found")
)

// ErrInvalidType formats a "kind 'name' not recognised" error the way the
// teacher's old/output constructor does for unknown config types.
func ErrInvalidType(kind, name string) error {
	return fmt.Errorf("%s type '%v' was not recognised (did you forget to import it?)", kind, name)
}
