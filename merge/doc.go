// Package merge implements MergeStage: produces the final fixed-degree
// row for each node by packing a prefix of forward (reordered) edges
// followed by a prefix of reverse edges, sized by a fixed budget rule that
// reserves at least half the degree for forward edges and grants the
// reverse half only up to its actual supply.
package merge
