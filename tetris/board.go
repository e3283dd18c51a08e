package tetris

const (
	Width  = 10
	Height = 16

	// PerfectClearBonus is awarded when a line clear leaves the grid empty.
	PerfectClearBonus = 1000
)

// levelLines[n] is the line count that must be exceeded to leave level n+1.
var levelLines = [10]uint32{20, 40, 60, 80, 100, 120, 140, 160, 180, 200}

// kickOffsets are the horizontal shifts tried, in order, when rotating.
var kickOffsets = [6]int{0, -1, 1, -2, 2, -3}

// Row is one line of the grid.
type Row [Width]uint8

func (r Row) complete() bool {
	for _, c := range r {
		if c == 0 {
			return false
		}
	}
	return true
}

// Phase is the macro state of a game.
type Phase uint8

const (
	// Spawning means there is no active piece and one must be spawned.
	Spawning Phase = iota
	// Falling means an active piece accepts intents and gravity.
	Falling
	// GameOver is terminal: a spawned piece did not fit.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Spawning:
		return "Spawning"
	case Falling:
		return "Falling"
	case GameOver:
		return "GameOver"
	}
	return "Unknown"
}

// LockResult describes what happened when a piece was made permanent.
type LockResult struct {
	Kind         Kind
	Cleared      int
	PerfectClear bool
	ScoreDelta   uint32
	LevelBefore  uint32
	LevelAfter   uint32
}

// LeveledUp reports whether the lock raised the level.
func (r LockResult) LeveledUp() bool {
	return r.LevelAfter > r.LevelBefore
}

// Board is the play-field plus the piece falling through it.
// A Board is not safe for concurrent use.
type Board struct {
	rows  []Row
	piece *Piece
	prev  Kind
	rng   Source
	over  bool

	score uint32
	lines uint32
	level uint32
}

// NewBoard returns an empty board at level 1 drawing pieces from src.
func NewBoard(src Source) *Board {
	b := &Board{
		rows:  make([]Row, Height),
		rng:   src,
		level: 1,
	}
	return b
}

func (b *Board) Score() uint32 { return b.score }
func (b *Board) Lines() uint32 { return b.lines }
func (b *Board) Level() uint32 { return b.level }
func (b *Board) Over() bool    { return b.over }

// Phase reports the board's macro state.
func (b *Board) Phase() Phase {
	switch {
	case b.over:
		return GameOver
	case b.piece == nil:
		return Spawning
	default:
		return Falling
	}
}

// Cell returns the value at row, col, or 0 when out of bounds.
func (b *Board) Cell(row, col int) uint8 {
	if row < 0 || row >= len(b.rows) || col < 0 || col >= Width {
		return 0
	}
	return b.rows[row][col]
}

// Rows returns a copy of the grid, top row first.
func (b *Board) Rows() []Row {
	out := make([]Row, len(b.rows))
	copy(out, b.rows)
	return out
}

// Active returns the falling piece, if any.
func (b *Board) Active() (Piece, bool) {
	if b.piece == nil {
		return Piece{}, false
	}
	return *b.piece, true
}

// CreateNewPiece draws the next kind, avoiding an immediate repeat of the
// previously created one, and returns it at its spawn position. The piece is
// not installed and its position is not checked.
func (b *Board) CreateNewPiece() Piece {
	k := RandomNext(b.rng, b.prev)
	b.prev = k
	return NewPiece(k)
}

// Spawn creates a new piece and makes it the active one. If it does not fit,
// the game is over and Spawn returns false. With a piece already falling
// Spawn does nothing and returns true.
func (b *Board) Spawn() bool {
	if b.over {
		return false
	}
	if b.piece != nil {
		return true
	}
	p := b.CreateNewPiece()
	if !b.fits(p.Kind, p.Rotation, p.X, p.Y) {
		b.over = true
		return false
	}
	b.piece = &p
	return true
}

// SetActive replaces the active piece without checking it, for drivers that
// pick pieces themselves. Passing NoKind clears it.
func (b *Board) SetActive(p Piece) {
	if !p.Kind.Valid() {
		b.piece = nil
		return
	}
	b.piece = &p
}

// fits is the collision test every move goes through.
func (b *Board) fits(k Kind, state, x, y int) bool {
	shape := shapeOf(k, state)
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 4; dx++ {
			if !shape.Filled(dy, dx) {
				continue
			}
			row, col := y+dy, x+dx
			if row < 0 || row >= len(b.rows) || col < 0 || col >= Width {
				return false
			}
			if b.rows[row][col] != 0 {
				return false
			}
		}
	}
	return true
}

// TestPosition reports whether the active piece, in rotation state, would fit
// with its origin at x, y. It is false without an active piece or for an
// unknown state.
func (b *Board) TestPosition(state, x, y int) bool {
	if b.piece == nil || state < 0 || state >= numStates(b.piece.Kind) {
		return false
	}
	return b.fits(b.piece.Kind, state, x, y)
}

// TestCurrentPosition reports whether the active piece fits where it is.
func (b *Board) TestCurrentPosition() bool {
	if b.piece == nil {
		return false
	}
	return b.TestPosition(b.piece.Rotation, b.piece.X, b.piece.Y)
}

// TestPiece reports whether p would fit on the grid as it stands.
func (b *Board) TestPiece(p Piece) bool {
	if p.Rotation < 0 || p.Rotation >= numStates(p.Kind) {
		return false
	}
	return b.fits(p.Kind, p.Rotation, p.X, p.Y)
}

// ChangePosition moves the active piece to x, y if it fits there.
func (b *Board) ChangePosition(x, y int) bool {
	if b.piece == nil || !b.TestPosition(b.piece.Rotation, x, y) {
		return false
	}
	b.piece.X, b.piece.Y = x, y
	return true
}

// Rotate advances the active piece to its next rotation state, shifting it
// sideways by the first offset in kickOffsets that fits. It reports whether
// the piece changed; a piece with a single state never does.
func (b *Board) Rotate() bool {
	if b.piece == nil {
		return false
	}
	n := numStates(b.piece.Kind)
	next := (b.piece.Rotation + 1) % n
	if next == b.piece.Rotation {
		return false
	}
	for _, dx := range kickOffsets {
		if b.TestPosition(next, b.piece.X+dx, b.piece.Y) {
			b.piece.Rotation = next
			b.piece.X += dx
			return true
		}
	}
	return false
}

// MakePermanent writes the active piece into the grid, awards the per-lock
// bonus of one point per level, clears complete lines and drops the piece.
// Cells outside the grid are skipped.
func (b *Board) MakePermanent() LockResult {
	res := LockResult{LevelBefore: b.level, LevelAfter: b.level}
	if b.piece == nil {
		return res
	}
	p := *b.piece
	res.Kind = p.Kind
	for _, c := range p.Cells() {
		if c.Y < 0 || c.Y >= len(b.rows) || c.X < 0 || c.X >= Width {
			continue
		}
		b.rows[c.Y][c.X] = uint8(p.Kind)
	}
	startScore := b.score
	b.addScore(b.level)
	res.Cleared, res.PerfectClear = b.CheckLines()
	b.piece = nil
	res.ScoreDelta = b.score - startScore
	res.LevelAfter = b.level
	return res
}

// CheckLines removes every complete row, scores it, and refills the grid from
// the top. It returns the number of rows removed and whether the grid was
// emptied.
func (b *Board) CheckLines() (int, bool) {
	var add uint32
	cleared := 0
	for y := 0; y < len(b.rows); {
		if !b.rows[y].complete() {
			y++
			continue
		}
		add += b.level
		b.rows = append(b.rows[:y], b.rows[y+1:]...)
		cleared++
	}
	perfect := len(b.rows) == 0
	if perfect {
		add += PerfectClearBonus
	}
	b.addScore(add)
	for len(b.rows) < Height {
		b.increaseLine()
		b.rows = append([]Row{{}}, b.rows...)
	}
	return cleared, perfect
}

func (b *Board) addScore(n uint32) {
	b.score += n
}

// increaseLine counts one cleared line and levels up past each threshold.
// There is no threshold after the last table entry.
func (b *Board) increaseLine() {
	b.lines++
	idx := int(b.level) - 1
	if idx < 0 || idx >= len(levelLines) {
		return
	}
	if b.lines > levelLines[idx] {
		b.level++
	}
}
