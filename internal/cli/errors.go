package cli

import "errors"

// ErrOutOfDate indicates launch.json differs from what would be generated.
var ErrOutOfDate = errors.New("launch.json is out of date")
