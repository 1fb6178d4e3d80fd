package vectorizer

import "errors"

// Sentinel errors for fitting and loading a vector space.
var (
	ErrEmptyCorpus     = errors.New("corpus has no usable terms")
	ErrInvalidArtifact = errors.New("invalid vocabulary artifact")
)
