package core

// Remove returns a copy of b with the given cells emptied.
func Remove(b Board, cells PosSet) Board {
	out := b.clone()
	for p := range cells {
		if out.InBounds(p) {
			out.set(p, Tile{})
		}
	}
	return out
}

// Compact lets tiles fall toward higher row indices. Within each column the
// surviving tiles keep their top-to-bottom order; empty cells end up on top.
func Compact(b Board) Board {
	out := b.clone()
	for c := 0; c < out.cols; c++ {
		write := out.rows - 1
		for r := out.rows - 1; r >= 0; r-- {
			t := out.At(Pos{r, c})
			if t.IsEmpty() {
				continue
			}
			if write != r {
				out.set(Pos{write, c}, t)
				out.set(Pos{r, c}, Tile{})
			}
			write--
		}
	}
	return out
}

// Refill fills empty cells with fresh base tiles, column by column from the
// left, top to bottom within a column. On hex boards a fresh tile takes the
// first color, from the drawn one on, that completes no match; six neighbors
// otherwise feed cascades that rarely end.
func Refill(b Board) Board {
	out := b.clone()
	hex := out.Shape() == ShapeHex
	for c := 0; c < out.cols; c++ {
		for r := 0; r < out.rows; r++ {
			p := Pos{r, c}
			if !out.At(p).IsEmpty() {
				continue
			}
			out.set(p, out.newTile(out.draw()))
			if hex {
				out.avoidMatch(p)
			}
		}
	}
	return out
}

// Collapse removes cleared cells, compacts every column and refills.
func Collapse(b Board, cleared PosSet) Board {
	return Refill(Compact(Remove(b, cleared)))
}
