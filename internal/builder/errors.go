package builder

import "errors"

// ErrType marks a wrong argument kind at a structural boundary, e.g. a
// non-element passed to Append or a split attempted on a category that does
// not support it.
var ErrType = errors.New("invalid argument type")

// ErrValue marks an invalid structural reference, e.g. an unknown element
// name, an out-of-range index or an unrecognised unit.
var ErrValue = errors.New("invalid argument value")
