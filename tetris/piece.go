// Package tetris holds the rules of a falling-block puzzle: the seven pieces,
// the grid they land on, line clears, scoring and levels.
package tetris

import "fmt"

// Kind identifies one of the seven pieces, or no piece at all.
// The numeric value of a non-empty Kind is also the cell id it leaves in the grid.
type Kind uint8

// Possible kinds.
const (
	NoKind Kind = iota
	I
	J
	L
	O
	S
	Z
	T

	// kindLimit is used to iterate through all kinds.
	kindLimit
)

// Kinds is an ordered array of the non-empty kinds.
var Kinds = [7]Kind{I, J, L, O, S, Z, T}

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "None"
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case Z:
		return "Z"
	case T:
		return "T"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the seven piece kinds.
func (k Kind) Valid() bool {
	return k > NoKind && k < kindLimit
}

// Shape is one rotation state of a piece. Zero cells are empty, the rest hold
// the piece's kind id.
type Shape [4][4]uint8

// Filled reports whether the cell at row dy, column dx is part of the piece.
func (s Shape) Filled(dy, dx int) bool {
	return s[dy][dx] != 0
}

type kindInfo struct {
	states []Shape
	spawnX int
}

var catalog = [kindLimit]kindInfo{
	I: {
		spawnX: 4,
		states: []Shape{
			{{1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}},
		},
	},
	J: {
		spawnX: 4,
		states: []Shape{
			{{2, 2, 2, 0}, {2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{2, 2, 0, 0}, {0, 2, 0, 0}, {0, 2, 0, 0}, {0, 0, 0, 0}},
			{{0, 0, 2, 0}, {2, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{2, 0, 0, 0}, {2, 0, 0, 0}, {2, 2, 0, 0}, {0, 0, 0, 0}},
		},
	},
	L: {
		spawnX: 4,
		states: []Shape{
			{{3, 3, 3, 0}, {0, 0, 3, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{0, 3, 0, 0}, {0, 3, 0, 0}, {3, 3, 0, 0}, {0, 0, 0, 0}},
			{{3, 0, 0, 0}, {3, 3, 3, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{3, 3, 0, 0}, {3, 0, 0, 0}, {3, 0, 0, 0}, {0, 0, 0, 0}},
		},
	},
	O: {
		spawnX: 5,
		states: []Shape{
			{{4, 4, 0, 0}, {4, 4, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		},
	},
	S: {
		spawnX: 4,
		states: []Shape{
			{{0, 5, 5, 0}, {5, 5, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{0, 5, 0, 0}, {0, 5, 5, 0}, {0, 0, 5, 0}, {0, 0, 0, 0}},
		},
	},
	Z: {
		spawnX: 4,
		states: []Shape{
			{{6, 6, 0, 0}, {0, 6, 6, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{0, 0, 6, 0}, {0, 6, 6, 0}, {0, 6, 0, 0}, {0, 0, 0, 0}},
		},
	},
	T: {
		spawnX: 4,
		states: []Shape{
			{{7, 7, 7, 0}, {0, 7, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{0, 7, 0, 0}, {7, 7, 0, 0}, {0, 7, 0, 0}, {0, 0, 0, 0}},
			{{0, 7, 0, 0}, {7, 7, 7, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			{{0, 7, 0, 0}, {0, 7, 7, 0}, {0, 7, 0, 0}, {0, 0, 0, 0}},
		},
	},
}

// ShapesFor returns the rotation states of a kind in cycle order.
// The returned slice is a copy. NoKind and unknown kinds have no states.
func ShapesFor(k Kind) []Shape {
	if !k.Valid() {
		return nil
	}
	states := catalog[k].states
	out := make([]Shape, len(states))
	copy(out, states)
	return out
}

// numStates returns how many rotation states a kind cycles through.
func numStates(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(catalog[k].states)
}

func shapeOf(k Kind, state int) Shape {
	return catalog[k].states[state]
}

// SpawnX returns the column a new piece of kind k starts at.
func SpawnX(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return catalog[k].spawnX
}

// Source is the randomness a selector draws from. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// RandomNext draws a kind uniformly from the seven. If the draw equals prev it
// draws exactly once more and keeps the second result, even if it repeats.
// Pass NoKind when there is no previous piece.
func RandomNext(src Source, prev Kind) Kind {
	next := Kinds[src.Intn(len(Kinds))]
	if next == prev {
		next = Kinds[src.Intn(len(Kinds))]
	}
	return next
}

// Piece is a falling piece: its kind, the board position of the top-left
// corner of its 4x4 shape, and its rotation state.
type Piece struct {
	Kind     Kind
	X        int
	Y        int
	Rotation int
}

// NewPiece returns a piece of kind k at its spawn position in rotation state 0.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, X: SpawnX(k), Y: 0}
}

// Shape returns the bitmap of the piece's current rotation state, or an empty
// shape if the piece is not valid.
func (p Piece) Shape() Shape {
	if p.Rotation < 0 || p.Rotation >= numStates(p.Kind) {
		return Shape{}
	}
	return shapeOf(p.Kind, p.Rotation)
}

// Point is a board coordinate. Y grows downwards from the top row.
type Point struct {
	X int
	Y int
}

// Cells returns the board coordinates covered by the piece.
func (p Piece) Cells() []Point {
	shape := p.Shape()
	cells := make([]Point, 0, 4)
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 4; dx++ {
			if shape.Filled(dy, dx) {
				cells = append(cells, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return cells
}
