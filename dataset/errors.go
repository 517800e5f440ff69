package dataset

import "github.com/pkg/errors"

// ErrMalformedInput indicates a document whose parts disagree with each
// other, such as a score matrix with ragged rows.
var ErrMalformedInput = errors.New("dataset: malformed input")
