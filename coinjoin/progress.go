package coinjoin

// Progress tracks a coarse-grained percentage through a multi-pass
// signing operation (this core's own supplemented feature, not part of
// the authorization flow proper): one pass over inputs computing
// scriptCode, one pass over inputs signing, one pass over outputs, and a
// final serialization pass over inputs, matching the four-pass shape a
// streaming SegWit signer runs.
type Progress struct {
	steps    int
	progress int
}

// NewProgress sizes a Progress for a transaction with the given input
// and output counts.
func NewProgress(inputs, outputs int) *Progress {
	return &Progress{steps: inputs + inputs + outputs + inputs}
}

// Advance records one unit of work done.
func (p *Progress) Advance() {
	p.progress++
}

// Permille returns progress as parts-per-thousand, the unit a hardware
// display's loader bar is driven in.
func (p *Progress) Permille() int {
	if p.steps == 0 {
		return 0
	}
	return 1000 * p.progress / p.steps
}
