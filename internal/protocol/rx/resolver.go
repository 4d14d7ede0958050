package rx

// Resolver is the per-window state machine that disambiguates bit tones,
// inter-bit spacer tones, and the end marker. Grounded on
// original_source/wavetrx/src/protocol/rx/resolver.rs's RxResolver.
//
// Two markers are held: current (selection, expectation) and end
// (selection, expectation). Unset never satisfies any expectation, so
// silence can never be accepted as a marker.
type Resolver struct {
	current marker
	end     marker
}

// NewResolver returns a resolver in its initial state: current selection
// unset, current expectation Start, end marker fully unset.
func NewResolver() *Resolver {
	return &Resolver{
		current: newMarkerWithExpectation(StateStart),
		end:     newMarker(),
	}
}

// Resolve feeds one window's magnitudes through the state machine and
// returns the Output for that window.
func (r *Resolver) Resolve(m Magnitudes) Result {
	hasExpectation := r.evaluateExpectation(m)
	hasEnd := r.evaluateEnd(m)

	if out, ok := r.resolveEnd(m, hasExpectation, hasEnd); ok {
		return out
	}

	if hasExpectation {
		r.updateExpectation()

		if r.current.selection.isBit() && r.current.expectation.isNext() {
			return Result{Output: OutputBit, Bit: m.ProminentBit()}
		}
	} else if !hasEnd {
		return Result{Output: OutputError}
	}

	return Result{Output: OutputUndefined}
}

// Reset returns the resolver to its freshly constructed state. The
// receiver must call this after every End or Error output before
// resuming.
func (r *Resolver) Reset() {
	r.current.unsetSelection()
	r.current.expectation = StateStart
	r.end.unsetSelection()
	r.end.unsetExpectation()
}

// evaluateExpectation tests the current expectation's magnitude against
// threshold. It does not change state; Resolve calls updateExpectation
// on a match once the end marker has been resolved.
func (r *Resolver) evaluateExpectation(m Magnitudes) bool {
	return m.withinThresholdFromState(r.current.expectation)
}

// updateExpectation performs step 2 of spec.md §4.4.4: if the
// expectation is Start or Bit, select it and expect Next; if the
// expectation is Next and the prior selection was Start or Bit, expect
// Bit.
func (r *Resolver) updateExpectation() {
	expectation := r.current.expectation

	if expectation.isStartOrBit() {
		r.current.selection = expectation
		r.current.expectation = StateNext
	} else if expectation.isNext() {
		if r.current.selection.isStartOrBit() {
			r.current.expectation = StateBit
		}
	}
}

// evaluateEnd performs step 1 of spec.md §4.4.4: if a start marker or bit
// has been followed by its next spacer (a bit is now expected), and the
// end frequency is within threshold, flag the tentative end marker. selection uses
// isStartOrBit rather than isBit so a zero-bit payload (selection still
// Start, never having confirmed a bit) can still arm end detection
// right after its start marker's own spacer, per spec.md §8 scenario S3.
func (r *Resolver) evaluateEnd(m Magnitudes) bool {
	if !r.current.expectation.isBit() {
		return false
	}
	if !r.current.selection.isStartOrBit() {
		return false
	}
	if !m.withinThresholdFromState(StateEnd) {
		return false
	}
	r.end.selection = StateEnd
	r.end.expectation = StateNext
	return true
}

// resolveEnd performs step 3 of spec.md §4.4.4.
func (r *Resolver) resolveEnd(m Magnitudes, hasExpectation, hasEnd bool) (Result, bool) {
	if hasEnd {
		return Result{}, false
	}

	hasEndExpectation := m.withinThresholdFromState(r.end.expectation)
	if hasEndExpectation && !hasExpectation {
		return Result{Output: OutputEnd}, true
	}

	r.end.unsetSelection()
	r.end.unsetExpectation()
	return Result{}, false
}
