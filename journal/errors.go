package journal

import "errors"

// Common errors. Call sites wrap these with fmt.Errorf("...: %w", ...) so
// callers can match with errors.Is.
var (
	// ErrValidation marks malformed input that never reaches storage.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by UpdateTrade for an unknown id. DeleteTrade
	// deliberately does not use it; deleting an absent id is a no-op.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("duplicate trade id")

	// ErrImport marks a malformed backup document. An import that fails with
	// it leaves the store at its pre-import state.
	ErrImport = errors.New("import failed")

	// ErrCorruptState means the settings singleton is missing and could not
	// be re-seeded.
	ErrCorruptState = errors.New("corrupt store state")
)
