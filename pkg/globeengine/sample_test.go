package globeengine

import "testing"

func TestGenRandomNumbers(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := GenRandomNumbers(0, 4, 3)
		if len(got) != 3 {
			t.Fatalf("got %d values; want 3", len(got))
		}
		seen := make(map[int]struct{})
		for _, n := range got {
			if n < 0 || n > 4 {
				t.Fatalf("value %d out of [0, 4]", n)
			}
			if _, dup := seen[n]; dup {
				t.Fatalf("duplicate value %d in %v", n, got)
			}
			seen[n] = struct{}{}
		}
	}
}

func TestGenRandomNumbersSingleton(t *testing.T) {
	got := GenRandomNumbers(0, 0, 1)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("GenRandomNumbers(0, 0, 1) = %v; want [0]", got)
	}
}

func TestGenRandomNumbersClampsCount(t *testing.T) {
	// Asking for more values than the range holds must terminate and
	// return the whole range.
	got := GenRandomNumbers(10, 12, 100)
	if len(got) != 3 {
		t.Fatalf("got %d values; want 3", len(got))
	}
	seen := make(map[int]struct{})
	for _, n := range got {
		if n < 10 || n > 12 {
			t.Errorf("value %d out of [10, 12]", n)
		}
		seen[n] = struct{}{}
	}
	if len(seen) != 3 {
		t.Errorf("got %d distinct values; want 3", len(seen))
	}
}

func TestGenRandomNumbersDegenerate(t *testing.T) {
	if got := GenRandomNumbers(5, 9, 0); got != nil {
		t.Errorf("zero count: got %v; want nil", got)
	}
	if got := GenRandomNumbers(5, 1, 3); got != nil {
		t.Errorf("inverted range: got %v; want nil", got)
	}
}
