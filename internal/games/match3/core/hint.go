package core

// Move is an ordered swap request.
type Move struct {
	From Pos
	To   Pos
}

// ValidMoves lists every swap that RequestSwap would accept, each unordered
// pair once, origin in row-major order.
func ValidMoves(b Board) []Move {
	var out []Move
	for _, p := range b.Positions() {
		for _, q := range b.Neighbors(p) {
			if !p.Less(q) {
				continue
			}
			if acceptsSwap(b, p, q) {
				out = append(out, Move{From: p, To: q})
			}
		}
	}
	return out
}

// FindHint returns the first valid move, if any.
func FindHint(b Board) (Move, bool) {
	for _, p := range b.Positions() {
		for _, q := range b.Neighbors(p) {
			if p.Less(q) && acceptsSwap(b, p, q) {
				return Move{From: p, To: q}, true
			}
		}
	}
	return Move{}, false
}

// HasValidMove reports whether any swap would be accepted.
func HasValidMove(b Board) bool {
	_, ok := FindHint(b)
	return ok
}

func acceptsSwap(b Board, p, q Pos) bool {
	return RequestSwap(b, p, q).Kind == OutcomeSettled
}
