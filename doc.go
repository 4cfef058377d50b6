// Package cagra is the root of a CAGRA-family offline proximity graph
// builder: it turns a precomputed k-nearest-neighbor graph into a
// compact, fixed-degree navigable graph via reorder, reverse, and merge.
//
// Everything lives in subpackages:
//
//	graphstore/ — FixedDegreeGraph, GraphInfo, serialization, allocation
//	reorder/    — detour-redundancy ranking of KNN candidates
//	reverse/    — deduplicated, bounded reverse-edge construction
//	merge/      — forward/reverse budget-balanced final packing
//	cagra/      — Builder orchestrating the three stages
//	config/     — configuration file loading
//	logx/       — structured leveled logging
//	metrics/    — optional Prometheus instrumentation
//	cmd/        — the cagra-build command-line entry point
//
//	go get github.com/cagraph/cagra
package cagra
