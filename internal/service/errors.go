package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation: malformed input, such as a bad reference, a negative
	// amount or a duplicate number.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState: the operation is not allowed in the document's
	// current DRAFT/POSTED state.
	ErrInvalidState = errors.New("invalid document state")

	// ErrDependency: cross-document posting-order violation.
	ErrDependency = errors.New("posting dependency violated")

	// ErrConflict: concurrent modification detected; the caller may retry
	// after re-reading the document.
	ErrConflict = errors.New("concurrent modification")

	// ErrPosting: the posting transaction failed and was rolled back;
	// the document remains DRAFT.
	ErrPosting = errors.New("posting failed")

	// ErrInternal: invariant violation, always a bug signal.
	ErrInternal = errors.New("internal invariant violated")
)
