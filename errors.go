package native

import "errors"

// ErrNullArgument is reported when the host passes a null string where one
// is required.
var ErrNullArgument = errors.New("native: null argument")
