package solver

import "math"

// shrink moves variables that sit at a bound and cannot re-enter the working
// set to the tail of the permutation, outside the active set. The first time
// the gap drops to 10·eps the full gradient is rebuilt and every variable is
// reconsidered.
func (s *state) shrink() {
	if s.variant == Nu {
		s.shrinkNu()
		return
	}

	gMax1 := math.Inf(-1) // max −y·G over I_up
	gMax2 := math.Inf(-1) // max  y·G over I_low
	for t := 0; t < s.activeSize; t++ {
		if s.y[t] == 1 {
			if !s.isUpper(t) && -s.g[t] >= gMax1 {
				gMax1 = -s.g[t]
			}
			if !s.isLower(t) && s.g[t] >= gMax2 {
				gMax2 = s.g[t]
			}
		} else {
			if !s.isUpper(t) && -s.g[t] >= gMax2 {
				gMax2 = -s.g[t]
			}
			if !s.isLower(t) && s.g[t] >= gMax1 {
				gMax1 = s.g[t]
			}
		}
	}
	if !s.unshrink && gMax1+gMax2 <= s.eps*10 {
		s.unshrink = true
		s.reconstructGradient()
		s.activeSize = s.l
	}
	s.compact(func(k int) bool { return s.shrinkable(k, gMax1, gMax2) })
}

func (s *state) shrinkable(k int, gMax1, gMax2 float64) bool {
	switch {
	case s.isUpper(k):
		if s.y[k] == 1 {
			return -s.g[k] > gMax1
		}
		return -s.g[k] > gMax2
	case s.isLower(k):
		if s.y[k] == 1 {
			return s.g[k] > gMax2
		}
		return s.g[k] > gMax1
	default:
		return false
	}
}

func (s *state) shrinkNu() {
	g1, g2, g3, g4 := math.Inf(-1), math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for t := 0; t < s.activeSize; t++ {
		if !s.isUpper(t) {
			if s.y[t] == 1 {
				g1 = math.Max(g1, -s.g[t])
			} else {
				g4 = math.Max(g4, -s.g[t])
			}
		}
		if !s.isLower(t) {
			if s.y[t] == 1 {
				g2 = math.Max(g2, s.g[t])
			} else {
				g3 = math.Max(g3, s.g[t])
			}
		}
	}
	if !s.unshrink && math.Max(g1+g2, g3+g4) <= s.eps*10 {
		s.unshrink = true
		s.reconstructGradient()
		s.activeSize = s.l
	}
	s.compact(func(k int) bool {
		switch {
		case s.isUpper(k):
			if s.y[k] == 1 {
				return -s.g[k] > g1
			}
			return -s.g[k] > g4
		case s.isLower(k):
			if s.y[k] == 1 {
				return s.g[k] > g2
			}
			return s.g[k] > g3
		default:
			return false
		}
	})
}

// compact swaps every shrinkable variable past the end of the active set.
func (s *state) compact(shrinkable func(int) bool) {
	for i := 0; i < s.activeSize; i++ {
		if !shrinkable(i) {
			continue
		}
		s.activeSize--
		for s.activeSize > i {
			if !shrinkable(s.activeSize) {
				s.swapIndex(i, s.activeSize)
				break
			}
			s.activeSize--
		}
	}
}

func (s *state) swapIndex(i, j int) {
	s.q.SwapIndex(i, j)
	s.y[i], s.y[j] = s.y[j], s.y[i]
	s.g[i], s.g[j] = s.g[j], s.g[i]
	s.status[i], s.status[j] = s.status[j], s.status[i]
	s.alpha[i], s.alpha[j] = s.alpha[j], s.alpha[i]
	s.p[i], s.p[j] = s.p[j], s.p[i]
	s.c[i], s.c[j] = s.c[j], s.c[i]
	s.active[i], s.active[j] = s.active[j], s.active[i]
	s.gBar[i], s.gBar[j] = s.gBar[j], s.gBar[i]
}

// reconstructGradient recomputes G for the inactive variables from Ḡ and
// the free active variables, picking the cheaper loop order.
func (s *state) reconstructGradient() {
	if s.activeSize == s.l {
		return
	}
	for j := s.activeSize; j < s.l; j++ {
		s.g[j] = s.gBar[j] + s.p[j]
	}
	nFree := 0
	for j := 0; j < s.activeSize; j++ {
		if s.isFree(j) {
			nFree++
		}
	}
	if nFree*s.l > 2*s.activeSize*(s.l-s.activeSize) {
		for i := s.activeSize; i < s.l; i++ {
			qi := s.q.Column(i, s.activeSize)
			for j := 0; j < s.activeSize; j++ {
				if s.isFree(j) {
					s.g[i] += s.alpha[j] * qi[j]
				}
			}
		}
		return
	}
	for i := 0; i < s.activeSize; i++ {
		if !s.isFree(i) {
			continue
		}
		qi := s.q.Column(i, s.l)
		ai := s.alpha[i]
		for j := s.activeSize; j < s.l; j++ {
			s.g[j] += ai * qi[j]
		}
	}
}
