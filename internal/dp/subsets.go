package dp

// Subset is one non-empty subset of piece indices: its size and the
// member indices themselves.
type Subset struct {
	Size    int
	Members []int
}

// Subsets63 is the 63 non-empty subsets of the six-piece catalogue,
// precomputed once at package init time — the same "build a flat table
// once in init()" idiom used for other small precomputed tables in this
// codebase's lineage (LMR reduction tables, Polyglot Zobrist keys).
var Subsets63 = ComputeSubsets(6)

func init() {
	if len(Subsets63) != 63 {
		panic("dp: expected 63 non-empty subsets of a 6-element set")
	}
}

// ComputeSubsets enumerates all non-empty subsets of {0, ..., n-1} as a
// flat table. Iteration order is deterministic (increasing subset
// bitmask) but otherwise unspecified — the recurrence takes a minimum
// over all of them, so order does not affect the result.
func ComputeSubsets(n int) []Subset {
	out := make([]Subset, 0, (1<<uint(n))-1)
	for mask := 1; mask < (1 << uint(n)); mask++ {
		members := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				members = append(members, i)
			}
		}
		out = append(out, Subset{Size: len(members), Members: members})
	}
	return out
}
