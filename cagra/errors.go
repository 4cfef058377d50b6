package cagra

import "github.com/cagraph/cagra/graphstore"

// These are re-exported so callers need only import this package for the
// error kinds spec.md S7 names; they are defined once in graphstore since
// serialization errors originate there too.
type (
	PreconditionError = graphstore.PreconditionError
	IoError           = graphstore.IoError
	FormatError       = graphstore.FormatError
	AllocError        = graphstore.AllocError
)
