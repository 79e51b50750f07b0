package chunks

import "testing"

// Seed scenario 2 (spec.md §8).
func TestHumanVersion(t *testing.T) {
	cases := []struct {
		internal uint16
		want     int
	}{
		{1224, 700},
		{1218, 600},
		{1200, 404}, // >=1201 is 500, so 1200 falls to the 404 tier
		{1117, 404},
		{1029, 310},
		{1028, 300},
		{1951, 1200},
		{1, 200},
	}
	for _, c := range cases {
		if got := HumanVersion(c.internal); got != c.want {
			t.Errorf("HumanVersion(%d) = %d, want %d", c.internal, got, c.want)
		}
	}
}

func TestHumanVersionMonotonic(t *testing.T) {
	prev := HumanVersion(0)
	for v := uint16(1); v < 2000; v++ {
		cur := HumanVersion(v)
		if cur < prev {
			t.Fatalf("HumanVersion not monotonic at %d: %d < %d", v, cur, prev)
		}
		prev = cur
	}
}

func TestDotSyntaxDefault(t *testing.T) {
	if DotSyntaxDefault(600) {
		t.Fatalf("600 should not default to dot-syntax")
	}
	if !DotSyntaxDefault(700) {
		t.Fatalf("700 should default to dot-syntax")
	}
}
