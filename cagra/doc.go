// Package cagra orchestrates the reorder -> reverse -> merge pipeline
// into a single Build operation, matching spec.md S4.5's Builder
// component. The base class in original_source carries only shared
// configuration and output storage with no polymorphism needed elsewhere
// in the core, so this package flattens that into one concrete Builder
// (spec.md S9's "flatten: no polymorphism required" note).
package cagra
