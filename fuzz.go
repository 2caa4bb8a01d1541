package recon

// Fuzz drives the subrecord iterator and byte primitives over arbitrary
// input, the nearest core-only analogue of the teacher's
// Fuzz(data []byte) int harness over NewBytes+Parse: this package has no
// single "open a file" entry point, but SubrecordIterator.All is the one
// loop every parser funnels through, so it is the seam most likely to
// panic on malformed input.
func Fuzz(data []byte) int {
	if len(data) < 1 {
		return 0
	}
	big := data[0]&1 != 0
	it := NewSubrecordIterator(data[1:], big)
	subs := it.All()
	for _, s := range subs {
		_ = it.Data(s)
	}
	if len(subs) == 0 {
		return 0
	}
	return 1
}
