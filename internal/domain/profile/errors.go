package profile

import "errors"

// Sentinel errors for profile building.
var (
	ErrEmptySelection = errors.New("no movies selected")
	ErrUnknownMovie   = errors.New("unknown movie")
)
