package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := newTestBoard()
	assert.Len(t, b.Rows(), Height)
	assert.Equal(t, uint32(1), b.Level())
	assert.Zero(t, b.Score())
	assert.Zero(t, b.Lines())
	assert.Equal(t, Spawning, b.Phase())
	_, ok := b.Active()
	assert.False(t, ok)
}

func TestTestPosition(t *testing.T) {
	tests := []struct {
		desc  string
		state int
		x, y  int
		want  bool
	}{
		{desc: "Top left", state: 0, x: 0, y: 0, want: true},
		{desc: "Left of the grid", state: 0, x: -1, y: 0, want: false},
		{desc: "Touching the right wall", state: 0, x: 6, y: 0, want: true},
		{desc: "Past the right wall", state: 0, x: 7, y: 0, want: false},
		{desc: "Bottom row", state: 0, x: 0, y: 15, want: true},
		{desc: "Below the grid", state: 0, x: 0, y: 16, want: false},
		{desc: "Above the grid", state: 0, x: 0, y: -1, want: false},
		{desc: "Vertical on the bottom", state: 1, x: 0, y: 12, want: true},
		{desc: "Vertical through the floor", state: 1, x: 0, y: 13, want: false},
		{desc: "Vertical empty column off the left", state: 1, x: -1, y: 0, want: true},
		{desc: "Onto a locked cell", state: 0, x: 2, y: 10, want: false},
		{desc: "Beside a locked cell", state: 0, x: 5, y: 10, want: true},
		{desc: "Unknown state", state: 2, x: 0, y: 0, want: false},
	}
	b := newTestBoard()
	b.rows[10][4] = 3
	b.SetActive(NewPiece(I))
	before := b.Rows()
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			assert.Equal(t, test.want, b.TestPosition(test.state, test.x, test.y))
		})
	}
	if diff := cmp.Diff(before, b.Rows()); diff != "" {
		t.Errorf("TestPosition changed the grid(-want +got):\n%s", diff)
	}
	p, _ := b.Active()
	assert.Equal(t, NewPiece(I), p)
}

func TestTestPositionWithoutPiece(t *testing.T) {
	b := newTestBoard()
	assert.False(t, b.TestPosition(0, 0, 0))
	assert.False(t, b.TestCurrentPosition())
}

func TestTestCurrentPositionIdempotent(t *testing.T) {
	b := newTestBoard()
	b.SetActive(NewPiece(T))
	first := b.TestCurrentPosition()
	assert.True(t, first)
	assert.Equal(t, first, b.TestCurrentPosition())

	b.rows[0][5] = 1
	first = b.TestCurrentPosition()
	assert.False(t, first)
	assert.Equal(t, first, b.TestCurrentPosition())
}

func TestChangePosition(t *testing.T) {
	b := newTestBoard()
	b.SetActive(NewPiece(O))
	assert.True(t, b.ChangePosition(8, 3))
	p, _ := b.Active()
	assert.Equal(t, 8, p.X)
	assert.Equal(t, 3, p.Y)

	assert.False(t, b.ChangePosition(9, 3))
	p, _ = b.Active()
	assert.Equal(t, 8, p.X, "rejected move must not change the piece")
	assert.Equal(t, 3, p.Y)
}

func TestRotateONoop(t *testing.T) {
	b := newTestBoard()
	b.SetActive(NewPiece(O))
	for i := 0; i < 4; i++ {
		assert.False(t, b.Rotate())
		p, _ := b.Active()
		assert.Equal(t, NewPiece(O), p)
	}
}

func TestRotateCycles(t *testing.T) {
	b := newTestBoard()
	b.SetActive(Piece{Kind: T, X: 3, Y: 5})
	for _, want := range []int{1, 2, 3, 0} {
		require.True(t, b.Rotate())
		p, _ := b.Active()
		assert.Equal(t, want, p.Rotation)
		assert.Equal(t, 3, p.X)
	}
}

func TestRotateKickOrder(t *testing.T) {
	tests := []struct {
		desc    string
		start   Piece
		blocked func(b *Board)
		wantX   int
		wantRot int
	}{
		{
			desc:    "Fits in place",
			start:   Piece{Kind: I, X: 3, Y: 4, Rotation: 1},
			wantX:   3,
			wantRot: 0,
		},
		{
			desc:    "One column left off the right wall",
			start:   Piece{Kind: I, X: 7, Y: 4, Rotation: 1},
			wantX:   6,
			wantRot: 0,
		},
		{
			desc:    "Right shift when left leaves the grid",
			start:   Piece{Kind: I, X: -1, Y: 4, Rotation: 1},
			wantX:   0,
			wantRot: 0,
		},
		{
			desc:    "Two columns left against the right wall",
			start:   Piece{Kind: I, X: 8, Y: 4, Rotation: 1},
			wantX:   6,
			wantRot: 0,
		},
		{
			desc:  "Two columns right when closer shifts are blocked",
			start: Piece{Kind: T, X: 3, Y: 4},
			blocked: func(b *Board) {
				for x := 2; x <= 5; x++ {
					b.rows[6][x] = 1
				}
			},
			wantX:   5,
			wantRot: 1,
		},
		{
			desc:  "Nothing fits",
			start: Piece{Kind: I, X: 0, Y: 0, Rotation: 1},
			blocked: func(b *Board) {
				fillRow(b, 0, 2, 1)
			},
			wantX:   0,
			wantRot: 1,
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			b := newTestBoard()
			if test.blocked != nil {
				test.blocked(b)
			}
			b.SetActive(test.start)
			require.True(t, b.TestCurrentPosition())
			b.Rotate()
			p, _ := b.Active()
			assert.Equal(t, test.wantX, p.X)
			assert.Equal(t, test.wantRot, p.Rotation)
			assert.Equal(t, test.start.Y, p.Y)
		})
	}
}

func TestDropIToFloor(t *testing.T) {
	b := newTestBoard()
	b.SetActive(NewPiece(I))
	for {
		p, _ := b.Active()
		if !b.ChangePosition(p.X, p.Y+1) {
			break
		}
	}
	p, _ := b.Active()
	assert.Equal(t, 15, p.Y)
	assert.Equal(t, 4, p.X)

	res := b.MakePermanent()
	assert.Equal(t, uint32(1), b.Score())
	assert.Equal(t, uint32(1), res.ScoreDelta)
	assert.Zero(t, res.Cleared)
	assert.Equal(t, Row{0, 0, 0, 0, 1, 1, 1, 1, 0, 0}, b.Rows()[15])
	assert.Equal(t, Spawning, b.Phase())
}

func TestClearBottomRow(t *testing.T) {
	b := newTestBoard()
	fillRow(b, 15, 2, 9)
	b.SetActive(Piece{Kind: I, X: 8, Y: 12, Rotation: 1})
	require.True(t, b.TestCurrentPosition())
	require.False(t, b.ChangePosition(8, 13))

	res := b.MakePermanent()
	assert.Equal(t, 1, res.Cleared)
	assert.False(t, res.PerfectClear)
	assert.Equal(t, uint32(2), b.Score(), "lock bonus plus one line at level 1")
	assert.Equal(t, uint32(1), b.Lines())
	rows := b.Rows()
	assert.Len(t, rows, Height)
	want := make([]Row, Height)
	for y := 13; y < Height; y++ {
		want[y][9] = 1
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("grid mismatch(-want +got):\n%s", diff)
	}
}

func TestCheckLinesCascade(t *testing.T) {
	b := newTestBoard()
	b.rows[13] = Row{1, 0, 0, 0, 0, 0, 0, 0, 0, 2}
	fillRow(b, 14, 3)
	fillRow(b, 15, 4)

	cleared, perfect := b.CheckLines()
	assert.Equal(t, 2, cleared)
	assert.False(t, perfect)
	assert.Equal(t, uint32(2), b.Score())
	assert.Equal(t, uint32(2), b.Lines())
	assert.Len(t, b.Rows(), Height)
	assert.Equal(t, Row{1, 0, 0, 0, 0, 0, 0, 0, 0, 2}, b.Rows()[15])
	assert.Equal(t, Row{}, b.Rows()[14])
}

func TestCheckLinesSeparatedRows(t *testing.T) {
	b := newTestBoard()
	fillRow(b, 3, 1)
	b.rows[4][0] = 5
	fillRow(b, 5, 1)

	cleared, _ := b.CheckLines()
	assert.Equal(t, 2, cleared)
	assert.Equal(t, uint8(5), b.Cell(5, 0))
}

func TestPerfectClear(t *testing.T) {
	b := newTestBoard()
	for y := 0; y < Height; y++ {
		fillRow(b, y, uint8(y%7+1))
	}
	cleared, perfect := b.CheckLines()
	assert.Equal(t, Height, cleared)
	assert.True(t, perfect)
	assert.Equal(t, uint32(Height+PerfectClearBonus), b.Score())
	assert.Equal(t, uint32(Height), b.Lines())
	if diff := cmp.Diff(make([]Row, Height), b.Rows()); diff != "" {
		t.Errorf("grid not empty(-want +got):\n%s", diff)
	}
}

func TestLevelUp(t *testing.T) {
	b := newTestBoard()
	b.lines = 19
	fillRow(b, 15, 1)
	b.CheckLines()
	assert.Equal(t, uint32(20), b.Lines())
	assert.Equal(t, uint32(1), b.Level(), "threshold must be exceeded")

	fillRow(b, 15, 1)
	b.CheckLines()
	assert.Equal(t, uint32(21), b.Lines())
	assert.Equal(t, uint32(2), b.Level())

	fillRow(b, 15, 1)
	b.CheckLines()
	assert.Equal(t, uint32(4), b.Score(), "two lines at level 1, then one at level 2")
}

func TestLevelStopsAfterTable(t *testing.T) {
	b := newTestBoard()
	b.level = 10
	b.lines = 200
	fillRow(b, 15, 1)
	b.CheckLines()
	assert.Equal(t, uint32(11), b.Level())

	for i := 0; i < 50; i++ {
		fillRow(b, 15, 1)
		b.CheckLines()
	}
	assert.Equal(t, uint32(11), b.Level())
	assert.Equal(t, uint32(251), b.Lines())
}

func TestLinesAndLevelNeverDecrease(t *testing.T) {
	b := newTestBoard(0, 3, 6, 1, 4, 2, 5)
	var lines, level uint32 = 0, 1
	for i := 0; i < 200 && b.Spawn(); i++ {
		b.Apply(HardDrop)
		if i%3 == 0 {
			fillRow(b, Height-1, 2)
		}
		b.CheckLines()
		assert.GreaterOrEqual(t, b.Lines(), lines)
		assert.GreaterOrEqual(t, b.Level(), level)
		lines, level = b.Lines(), b.Level()
	}
}

func TestMakePermanentSkipsOutOfBounds(t *testing.T) {
	b := newTestBoard()
	b.SetActive(Piece{Kind: I, X: 8, Y: 15})
	res := b.MakePermanent()
	assert.Equal(t, I, res.Kind)
	assert.Equal(t, Row{0, 0, 0, 0, 0, 0, 0, 0, 1, 1}, b.Rows()[15])
	assert.Equal(t, uint32(1), b.Score())

	b.SetActive(Piece{Kind: O, X: -1, Y: 14})
	b.MakePermanent()
	assert.Equal(t, uint8(4), b.Cell(14, 0))
	assert.Equal(t, uint8(4), b.Cell(15, 0))
}

func TestMakePermanentWithoutPiece(t *testing.T) {
	b := newTestBoard()
	res := b.MakePermanent()
	assert.Equal(t, LockResult{LevelBefore: 1, LevelAfter: 1}, res)
	assert.Zero(t, b.Score())
}

func TestMakePermanentUsesLevel(t *testing.T) {
	b := newTestBoard()
	b.level = 4
	fillRow(b, 15, 2, 0)
	b.SetActive(Piece{Kind: I, X: -1, Y: 12, Rotation: 1})
	res := b.MakePermanent()
	assert.Equal(t, 1, res.Cleared)
	assert.Equal(t, uint32(8), res.ScoreDelta)
	assert.False(t, res.LeveledUp())
}

func TestSpawn(t *testing.T) {
	b := newTestBoard(6, 6, 0)
	require.True(t, b.Spawn())
	p, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, NewPiece(T), p)
	assert.Equal(t, Falling, b.Phase())

	assert.True(t, b.Spawn(), "spawning with a falling piece keeps it")
	p, _ = b.Active()
	assert.Equal(t, T, p.Kind)

	require.True(t, b.Apply(HardDrop).Locked)
	require.True(t, b.Spawn())
	p, _ = b.Active()
	assert.Equal(t, I, p.Kind, "repeat of T is redrawn")
}

func TestSpawnGameOver(t *testing.T) {
	b := newTestBoard(3)
	fillRow(b, 0, 1, 0)
	assert.False(t, b.Spawn())
	assert.True(t, b.Over())
	assert.Equal(t, GameOver, b.Phase())
	_, ok := b.Active()
	assert.False(t, ok)
	assert.False(t, b.Spawn())
}

func TestCreateNewPieceDoesNotInstall(t *testing.T) {
	b := newTestBoard(2)
	fillRow(b, 0, 1)
	p := b.CreateNewPiece()
	assert.Equal(t, NewPiece(L), p)
	assert.False(t, b.TestPiece(p))
	assert.Equal(t, Spawning, b.Phase())
}
