package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 4, 8)

	grown := EnsureLen(buf, 6)
	if len(grown) != 6 {
		t.Fatalf("length: got %d, expected 6", len(grown))
	}
	if &grown[0] != &buf[0] {
		t.Error("expected capacity reuse, got fresh allocation")
	}

	fresh := EnsureLen(buf, 16)
	if len(fresh) != 16 {
		t.Fatalf("length: got %d, expected 16", len(fresh))
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Errorf("zero length: got %d", len(got))
	}
}

func TestEnsureLenComplex(t *testing.T) {
	buf := EnsureLenComplex(nil, 5)
	if len(buf) != 5 {
		t.Fatalf("length: got %d, expected 5", len(buf))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Errorf("buf[%d] = %v after Zero", i, v)
		}
	}
}
