// Package runid tags a single CLI invocation with a UUIDv4. The analyze
// command includes it in the error text it returns when analysis cannot
// run.
package runid

import "github.com/google/uuid"

// ID is a run identifier.
type ID string

// New returns a fresh random run id.
func New() ID {
	return ID(uuid.New().String())
}

// String implements fmt.Stringer.
func (i ID) String() string { return string(i) }
