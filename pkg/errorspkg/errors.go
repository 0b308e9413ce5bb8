// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal masks unexpected failures on the HTTP surface so storage
// details never leak into a response body.
var ErrInternal = errors.New("internal error")
