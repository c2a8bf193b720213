package manchester

import "errors"

// ErrInvalidEncoding indicates a coded bit pair that matches neither valid
// transition pattern (no transition, or both phases identical).
var ErrInvalidEncoding = errors.New("invalid manchester encoding")
