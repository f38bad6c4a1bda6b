package matrixcolor

import "errors"

// ErrInvalidArgument is returned when a matrix is built from a sequence that
// is not 20 or 25 elements long, or when element-wise operands differ in
// length. Match it with errors.Is; returned errors wrap it with the
// offending lengths.
var ErrInvalidArgument = errors.New("matrixcolor: invalid argument")
