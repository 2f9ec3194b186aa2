package application

import "errors"

// Sentinel errors for common conditions
var ErrNoEntries = errors.New("no entries recorded yet")
