package coinjoin

import "testing"

func TestProgressAdvanceAndPermille(t *testing.T) {
	p := NewProgress(2, 1) // steps = 2+2+1+2 = 7
	if got := p.Permille(); got != 0 {
		t.Fatalf("fresh progress = %d, want 0", got)
	}
	for i := 0; i < 7; i++ {
		p.Advance()
	}
	if got := p.Permille(); got != 1000 {
		t.Fatalf("fully advanced progress = %d, want 1000", got)
	}
}

func TestProgressZeroInputsOutputs(t *testing.T) {
	p := NewProgress(0, 0)
	if got := p.Permille(); got != 0 {
		t.Fatalf("empty progress = %d, want 0", got)
	}
}
