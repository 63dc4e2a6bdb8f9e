package dice

import "go.uber.org/zap"

// Roller wraps a Source with the two draws the rules use: an inclusive range
// and a one-in-n chance. Every draw is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller drawing from src.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Range returns a uniformly distributed int in [lo, hi]. Bounds given in the
// wrong order are swapped.
//
// Postcondition: min(lo,hi) <= result <= max(lo,hi).
func (r *Roller) Range(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("rng",
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("result", v),
	)
	return v
}

// OneIn reports true with probability 1/n. n <= 1 always succeeds.
func (r *Roller) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	hit := r.src.Intn(n) == 0
	r.logger.Debug("one_in",
		zap.Int("n", n),
		zap.Bool("hit", hit),
	)
	return hit
}
