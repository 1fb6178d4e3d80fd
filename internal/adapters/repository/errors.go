package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrLoad                = errors.New("catalog load failed")
	ErrNotFound            = errors.New("not found in catalog")
	ErrInsufficientCatalog = errors.New("catalog too small for request")
	ErrInvalidSampleSize   = errors.New("invalid sample size")
	ErrDuplicateTitle      = errors.New("duplicate movie title")
	ErrMissingColumn       = errors.New("missing required column")
	ErrUnsupportedTable    = errors.New("unsupported table")
)
