package model

import "github.com/rotisserie/eris"

// Validation errors for search input. These are the only errors the
// pipeline surfaces directly to the caller; everything below the pipeline
// boundary is recovered locally with a safe fallback.
var (
	ErrMissingLocation     = eris.New("model: location is required")
	ErrMissingBusinessType = eris.New("model: business type is required")
)
