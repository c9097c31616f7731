package draft

// TurnAt computes which round and draft position are on the clock for an
// absolute pick index in a snake-order draft.
//
// pickIndex is 0-based and ranges over [0, participantCount*rounds). The
// returned round and position are both 1-based: position 1 is the first
// slot assigned at draft-order finalization. Odd rounds (1, 3, ...) run
// positions forward, even rounds run them in reverse.
//
// The function is total over its domain; skipping is a runtime policy
// applied by the resolution engine, never encoded here.
func TurnAt(pickIndex, participantCount int) (round, position int) {
	if participantCount < 1 {
		return 0, 0
	}

	roundIdx := pickIndex / participantCount
	indexInRound := pickIndex % participantCount

	if roundIdx%2 == 0 {
		position = indexInRound + 1
	} else {
		position = participantCount - indexInRound
	}

	return roundIdx + 1, position
}
