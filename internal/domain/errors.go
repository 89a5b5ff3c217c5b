package domain

import "errors"

// ErrNotFound is the shared "definitively absent" signal across the
// storage layer and the provider client.
var ErrNotFound = errors.New("not found")
