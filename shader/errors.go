package shader

import "errors"

// ErrProgramNotFound is returned by Registry.Lookup when no Program has
// been registered under the requested name.
var ErrProgramNotFound = errors.New("shader: program not found")
