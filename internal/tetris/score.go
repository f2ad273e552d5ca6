package tetris

import "math"

var lineScores = [...]int64{0, 40, 100, 300, 1200}

const linesPerLevel = 10

// Score is the running tally of a game. Lines counts cleared rows since the
// last level-up.
type Score struct {
	Points int64
	Level  int
	Lines  int
}

func NewScore() Score {
	return Score{Level: 1}
}

// Award credits a lock that cleared n rows. It reports false, leaving the
// score untouched, when the points would no longer fit in an int64.
func (s *Score) Award(n int) bool {
	if n <= 0 {
		return true
	}
	if n >= len(lineScores) {
		n = len(lineScores) - 1
	}
	if !s.add(lineScores[n], int64(s.Level)) {
		return false
	}
	s.Lines += n
	for s.Lines >= linesPerLevel {
		s.Lines -= linesPerLevel
		s.Level++
	}
	return true
}

// AddDrop credits one point per row descended by a drop.
func (s *Score) AddDrop(rows int) bool {
	if rows <= 0 {
		return true
	}
	return s.add(int64(rows), 1)
}

func (s *Score) add(base, factor int64) bool {
	if factor > 0 && base > math.MaxInt64/factor {
		return false
	}
	delta := base * factor
	if delta > math.MaxInt64-s.Points {
		return false
	}
	s.Points += delta
	return true
}

// Total is the ranking value of a finished game: points times level,
// saturating at math.MaxInt64.
func (s Score) Total() int64 {
	if s.Points == 0 || s.Level <= 0 {
		return 0
	}
	if s.Points > math.MaxInt64/int64(s.Level) {
		return math.MaxInt64
	}
	return s.Points * int64(s.Level)
}
