package common

import "github.com/pkg/errors"

// ErrMalformedRegion indicates a region with the wrong dimensionality or an
// inconsistent frame layout.
var ErrMalformedRegion = errors.New("common: malformed region")
