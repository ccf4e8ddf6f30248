package resource

import "errors"

// ErrNotFound is returned by Remove when no resource is registered under the
// given name.
var ErrNotFound = errors.New("resource: not found")

// ErrUnknownLoader is returned by LoadResource when no loader is registered
// for the requested type tag.
var ErrUnknownLoader = errors.New("resource: no loader registered for type tag")
