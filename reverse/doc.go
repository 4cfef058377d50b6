// Package reverse implements ReverseStage: builds the reverse graph of a
// reordered FixedDegreeGraph, capped at R edges per destination and
// deduplicated against the destination's own forward row.
//
// For each forward edge x -> y, x is a candidate reverse edge into y's
// bucket unless y already lists x forward. Candidate destinations claim a
// slot via a per-destination atomic counter; once R slots are claimed,
// further candidates are counted but dropped. The final counter value is
// therefore the number of candidates attempted, not the number stored --
// MergeStage needs that distinction to size its budget split.
package reverse
