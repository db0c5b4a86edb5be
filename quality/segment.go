package quality

// segment is one slug of water of volume V and concentration C inside a
// pipe or tank's FIFO chain.
type segment struct {
	V float64
	C float64
}

// chain is a FIFO sequence of segments. Index 0 is the oldest segment (the
// exit end, about to leave the pipe or be withdrawn from a tank); the last
// index is the newest (the entry end, where inflow merges in).
type chain []segment

// mergeOrAppend adds an inflow of volume v and concentration c to the entry
// end, merging into the existing last segment if its concentration is
// already within tol, else appending a fresh one.
func (ch chain) mergeOrAppend(v, c, tol float64) chain {
	if v <= 0 {
		return ch
	}
	n := len(ch)
	if n > 0 && abs(ch[n-1].C-c) < tol {
		ch[n-1].V += v
		return ch
	}
	return append(ch, segment{V: v, C: c})
}

// withdrawFront removes up to volume v from the exit end, returning the
// trimmed chain, the volume actually removed, and its volume-weighted
// concentration.
func (ch chain) withdrawFront(v float64) (chain, float64, float64) {
	vsum, wsum := 0.0, 0.0
	for v > 0 && len(ch) > 0 {
		seg := &ch[0]
		take := seg.V
		if take > v {
			take = v
		}
		vsum += take
		wsum += take * seg.C
		seg.V -= take
		v -= take
		if seg.V <= 0 {
			ch = ch[1:]
		}
	}
	if vsum <= 0 {
		return ch, 0, 0
	}
	return ch, vsum, wsum / vsum
}

// withdrawBack removes up to volume v from the entry end, used by the LIFO
// tank model which withdraws from the same end it fills.
func (ch chain) withdrawBack(v float64) (chain, float64, float64) {
	vsum, wsum := 0.0, 0.0
	for v > 0 && len(ch) > 0 {
		idx := len(ch) - 1
		seg := &ch[idx]
		take := seg.V
		if take > v {
			take = v
		}
		vsum += take
		wsum += take * seg.C
		seg.V -= take
		v -= take
		if seg.V <= 0 {
			ch = ch[:idx]
		}
	}
	if vsum <= 0 {
		return ch, 0, 0
	}
	return ch, vsum, wsum / vsum
}

// volume sums the volume of every segment in the chain.
func (ch chain) volume() float64 {
	v := 0.0
	for _, s := range ch {
		v += s.V
	}
	return v
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
