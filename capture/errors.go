package capture

import "errors"

// ErrInvalidRecord indicates a capture record that fails structural
// validation (bad bus bit, empty command payload).
var ErrInvalidRecord = errors.New("invalid capture record")
