package properties

import "errors"

// ErrPropertyDomain is returned when a temperature selects a polynomial
// segment that the substance table does not define.
var ErrPropertyDomain = errors.New("temperature outside property fit domain")
