package setx

import "testing"

func TestIntersectionAndUnion(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(2, 3, 4)

	inter := Intersection(a, b)
	if inter.Size() != 2 || !inter.Contains(2) || !inter.Contains(3) {
		t.Errorf("Intersection = %v, want {2,3}", inter)
	}

	union := Union(a, b)
	if union.Size() != 4 {
		t.Errorf("Union size = %d, want 4", union.Size())
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Set[int]
		want   float64
	}{
		{"identical sets", Of(1, 2, 3), Of(1, 2, 3), 1.0},
		{"disjoint sets", Of(1, 2), Of(3, 4), 0.0},
		{"partial overlap", Of(1, 2, 3, 4), Of(3, 4, 5, 6), 2.0 / 6.0},
		{"both empty", Of[int](), Of[int](), 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}
