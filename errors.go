package navguard

import "errors"

var (
	// ErrBuilderReused is returned by Build when the builder has already
	// produced a pipeline.
	ErrBuilderReused = errors.New("builder already used")
	// ErrNotHandler wraps the failure produced by a route middleware
	// declaration that is neither a handler nor a list of handlers.
	ErrNotHandler = errors.New("declaration is not a navigation guard")
	// ErrGuardPanic wraps the recovered value of a guard that panicked
	// mid-run.
	ErrGuardPanic = errors.New("navigation guard panicked")
)
