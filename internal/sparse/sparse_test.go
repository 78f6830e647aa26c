package sparse

import "testing"

func TestSet_InsertContains(t *testing.T) {
	s := New(16)

	if s.Contains(3) {
		t.Error("empty set contains 3")
	}
	s.Insert(3)
	s.Insert(7)
	s.Insert(3) // duplicate is a no-op
	if !s.Contains(3) || !s.Contains(7) {
		t.Error("missing inserted values")
	}
	if s.Contains(4) {
		t.Error("contains value never inserted")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Contains(100) {
		t.Error("out-of-capacity value reported present")
	}
}

func TestSet_ValuesInsertionOrder(t *testing.T) {
	s := New(8)
	for _, v := range []uint32{5, 1, 6} {
		s.Insert(v)
	}
	got := s.Values()
	want := []uint32{5, 1, 6}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values() = %v, want %v", got, want)
		}
	}
}

func TestSet_Clear(t *testing.T) {
	s := New(8)
	s.Insert(2)
	s.Clear()
	if s.Len() != 0 || s.Contains(2) {
		t.Error("Clear did not empty the set")
	}
	// Stale sparse entries must not produce false positives.
	s.Insert(5)
	if s.Contains(2) {
		t.Error("stale membership after Clear")
	}
}
