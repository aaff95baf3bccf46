package physics

import "errors"

// ErrInvalidConfig is wrapped by every configuration validation failure,
// so callers can match the whole class with errors.Is.
var ErrInvalidConfig = errors.New("physics: invalid config")
