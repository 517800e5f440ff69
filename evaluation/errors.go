package evaluation

import "github.com/pkg/errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNotImplemented indicates an evaluation strategy that does not exist
	// for the requested dataset.
	ErrNotImplemented = errors.New("evaluation: not implemented")

	// ErrMissingClass indicates a class-indexed input without an entry for a
	// configured class.
	ErrMissingClass = errors.New("evaluation: missing class")

	// ErrShapeMismatch indicates inputs whose dimensions disagree.
	ErrShapeMismatch = errors.New("evaluation: shape mismatch")

	// ErrMissingLabelType indicates a split without inputs for a listed
	// label type.
	ErrMissingLabelType = errors.New("evaluation: missing label type")

	// ErrNoClasses indicates a configuration without any class to evaluate.
	ErrNoClasses = errors.New("evaluation: no classes configured")
)
