package tetris

import "time"

// InitialInterval is the gravity interval a new game starts from, before
// its first re-arm.
const InitialInterval = 500 * time.Millisecond

// NextInterval shrinks prev by 1/(3000-10*level) of itself, in whole
// microseconds. From level 300 on the divisor is no longer positive and
// prev is returned unchanged.
func NextInterval(prev time.Duration, level int) time.Duration {
	div := int64(3000 - 10*level)
	if div <= 0 {
		return prev
	}
	us := prev.Microseconds()
	us -= us / div
	return time.Duration(us) * time.Microsecond
}

// Gravity tracks the interval between forced ticks of one game.
type Gravity struct {
	interval time.Duration
}

// Reset restores the initial interval and returns the first armed interval.
func (g *Gravity) Reset(level int) time.Duration {
	g.interval = InitialInterval
	return g.Next(level)
}

// Next advances to and returns the interval for the next tick.
func (g *Gravity) Next(level int) time.Duration {
	if g.interval <= 0 {
		g.interval = InitialInterval
	}
	g.interval = NextInterval(g.interval, level)
	return g.interval
}

// Current returns the last armed interval without advancing.
func (g *Gravity) Current() time.Duration {
	if g.interval <= 0 {
		return InitialInterval
	}
	return g.interval
}
