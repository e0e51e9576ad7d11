package cell

import "testing"

func TestRelationString(t *testing.T) {
	cases := map[Relation]string{
		Disjoint:   "Disjoint",
		Within:     "Within",
		Contains:   "Contains",
		Intersects: "Intersects",
	}
	for r, want := range cases {
		if got := r.String(); got != want {
			t.Errorf("Relation(%d).String() = %q, want %q", r, got, want)
		}
	}
}

func TestRelationStringUnknown(t *testing.T) {
	if got := Relation(255).String(); got != "Unknown" {
		t.Errorf("Relation(255).String() = %q, want %q", got, "Unknown")
	}
}
