package state

// A Hold captures the stream position at its creation and keeps the
// buffered input from that position onward alive, so the cursor can later
// be rolled back to it.
//
// Every Hold must be resolved exactly once, by State.Release (commit the
// input consumed since the hold) or State.Reset (roll the cursor back).
// A Hold belongs to the State that created it and cannot be resolved by
// another State.
//
// Discarding an unresolved Hold is a programming defect in the calling
// grammar, not a parse condition: it silently pins buffer memory and hides
// a missing backtrack decision. Go has no destructors to assert this at
// collection time, so the check is split between Close, which panics when
// invoked on an unresolved Hold, and State.OpenHolds, which tests can
// assert reaches zero.
type Hold struct {
	st       *State
	pos      int
	resolved bool
}

// Pos returns the absolute stream position captured by the hold.
func (h *Hold) Pos() int {
	return h.pos
}

// Resolved reports whether the hold has been released or reset.
func (h *Hold) Resolved() bool {
	return h.resolved
}

// Close verifies the hold was resolved. It panics if the hold is still
// unresolved: reaching disposal without a Release or Reset decision is a
// bug in the calling code. Deferring Close right after State.Hold makes
// the check run at scope exit:
//
//	h := st.Hold()
//	defer h.Close()
//	// ... every path below must st.Release(h) or st.Reset(h)
//
// Close always returns nil; the error result only satisfies io.Closer.
func (h *Hold) Close() error {
	if !h.resolved {
		panic("state: hold discarded without release or reset")
	}

	return nil
}
