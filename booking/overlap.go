package booking

import "time"

type BlockKind string

const (
	BlockPending    BlockKind = "PENDING"
	BlockApproved   BlockKind = "APPROVED"
	BlockActiveLoan BlockKind = "ACTIVE_LOAN"
)

// Block is one interval during which an item cannot be booked, tagged with
// the kind of record that causes it.
type Block struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  BlockKind `json:"kind"`
}

// Overlaps reports whether [s1,e1] and [s2,e2] overlap. Boundaries are
// inclusive: intervals that merely touch at an endpoint conflict. The SQL
// predicates in the db package must stay in sync with this rule
// (end >= start2 AND start <= end2).
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !e1.Before(s2) && !s1.After(e2)
}

// ConflictsWith reports whether the candidate interval [start,end] overlaps
// any of the given blocks.
func ConflictsWith(start, end time.Time, blocks []Block) bool {
	for _, b := range blocks {
		if Overlaps(b.Start, b.End, start, end) {
			return true
		}
	}
	return false
}
