// Package reorder implements ReorderStage: for each node x, it ranks the
// first R_INIT candidates of x's KNNG row by a detour-redundancy score and
// keeps the R candidates with the lowest score, breaking ties by original
// KNN rank.
//
// A candidate y at rank i is credited with one detour for each z that
// appears at position j among y's own first R_INIT neighbors, also appears
// in x's row, and satisfies max(i, j) < rank(z) in x's row -- informally,
// x reaches z through y by two hops that both rank ahead of the direct
// edge x -> z. The stage counts these detours per candidate and keeps the
// least-detourable ones.
package reorder
