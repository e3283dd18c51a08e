package tetris

// seqSource replays fixed draws, cycling when it runs out.
type seqSource struct {
	draws []int
	n     int
}

func (s *seqSource) Intn(n int) int {
	v := s.draws[s.n%len(s.draws)]
	s.n++
	return v % n
}

func newTestBoard(draws ...int) *Board {
	if len(draws) == 0 {
		draws = []int{0}
	}
	return NewBoard(&seqSource{draws: draws})
}

func fillRow(b *Board, y int, v uint8, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < Width; x++ {
		if !skip[x] {
			b.rows[y][x] = v
		}
	}
}
