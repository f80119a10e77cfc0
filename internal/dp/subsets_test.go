package dp

import "testing"

func TestComputeSubsetsCount(t *testing.T) {
	subsets := ComputeSubsets(6)
	if len(subsets) != 63 {
		t.Fatalf("len(subsets) = %d, want 63", len(subsets))
	}
}

func TestComputeSubsetsSizesAndMembers(t *testing.T) {
	subsets := ComputeSubsets(3)
	if len(subsets) != 7 {
		t.Fatalf("len(subsets) = %d, want 7", len(subsets))
	}
	seen := map[string]bool{}
	for _, s := range subsets {
		if s.Size != len(s.Members) {
			t.Errorf("Size=%d but len(Members)=%d", s.Size, len(s.Members))
		}
		key := ""
		for _, m := range s.Members {
			if m < 0 || m >= 3 {
				t.Errorf("member %d out of range", m)
			}
			key += string(rune('a' + m))
		}
		if seen[key] {
			t.Errorf("duplicate subset %v", s.Members)
		}
		seen[key] = true
	}
	if len(seen) != 7 {
		t.Errorf("got %d distinct subsets, want 7", len(seen))
	}
}

func TestSubsets63Singletons(t *testing.T) {
	singletons := 0
	for _, s := range Subsets63 {
		if s.Size == 1 {
			singletons++
		}
	}
	if singletons != 6 {
		t.Errorf("expected 6 singleton subsets, got %d", singletons)
	}
}
