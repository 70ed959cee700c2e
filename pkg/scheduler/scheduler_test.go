package scheduler

import "testing"

func TestSingleAlwaysReturnsSameColor(t *testing.T) {
	s := Single{ColorIdx: 3}
	for i := 0; i < 5; i++ {
		idx, ok := s.Next()
		if !ok || idx != 3 {
			t.Fatalf("expected (3,true), got (%d,%v)", idx, ok)
		}
	}
}

func TestManualRejectsOutOfRangeColorIdx(t *testing.T) {
	_, err := NewManual([]ManualGroup{
		{ColorIdx: []int{0, 5}, Cap: []int{1, 1}},
	}, 2)
	if err == nil {
		t.Fatal("expected error for out-of-range color index")
	}
}

func TestManualRespectsCapsThenExhausts(t *testing.T) {
	m, err := NewManual([]ManualGroup{
		{ColorIdx: []int{0, 1}, Cap: []int{2, 1}},
	}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := map[int]int{}
	for i := 0; i < 3; i++ {
		idx, ok := m.Next()
		if !ok {
			t.Fatalf("unexpected exhaustion at step %d", i)
		}
		counts[idx]++
	}
	if counts[0] != 2 || counts[1] != 1 {
		t.Fatalf("expected caps (2,1) respected, got %v", counts)
	}
	if _, ok := m.Next(); ok {
		t.Fatal("expected exhaustion after all caps reached")
	}
}

func TestAutoDerivesCapsProportionally(t *testing.T) {
	countPerColor := []int{100, 100}
	a, err := NewAuto([]AutoGroup{
		{ColorIdx: []int{0, 1}, Weight: 1.0},
	}, countPerColor, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := map[int]int{}
	for {
		idx, ok := a.Next()
		if !ok {
			break
		}
		counts[idx]++
	}
	if counts[0] != counts[1] {
		t.Fatalf("expected equal pixel counts to yield equal draws, got %v", counts)
	}
	if counts[0] == 0 {
		t.Fatal("expected nonzero draws")
	}
}

func TestAutoRejectsOutOfRangeColorIdx(t *testing.T) {
	_, err := NewAuto([]AutoGroup{
		{ColorIdx: []int{0, 9}, Weight: 1.0},
	}, []int{10, 10}, 5)
	if err == nil {
		t.Fatal("expected error for out-of-range color index")
	}
}
