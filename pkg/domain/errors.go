package domain

import "errors"

// ErrCacheMiss is returned by a DocumentCache when no compilation is stored under a key.
var ErrCacheMiss = errors.New("compilation not cached")

// ErrUnsupportedFormat is returned when an export format is not known.
var ErrUnsupportedFormat = errors.New("unsupported export format")
