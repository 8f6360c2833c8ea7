package texture

import "errors"

// ErrAllocationFailed is logged, not returned, when mipmap level
// allocation fails partway through generation; the texture degrades to
// serving level 0 forever rather than panicking or corrupting state. It is
// declared here so callers that want to recognize the condition in a log
// record can match on it with errors.Is.
var ErrAllocationFailed = errors.New("texture: mipmap allocation failed")
