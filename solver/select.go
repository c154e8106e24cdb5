package solver

import "math"

// selectWorkingSet picks the pair (i, j) to update, or ok=false when the
// active set satisfies the KKT conditions within eps.
func (s *state) selectWorkingSet() (i, j int, ok bool) {
	if s.variant == Nu {
		return s.selectNu()
	}

	// i maximizes −y_t·G_t over I_up.
	gMax := math.Inf(-1)
	gMax2 := math.Inf(-1)
	gMaxIdx, gMinIdx := -1, -1
	objDiffMin := math.Inf(1)
	for t := 0; t < s.activeSize; t++ {
		if s.y[t] == 1 {
			if !s.isUpper(t) && -s.g[t] >= gMax {
				gMax = -s.g[t]
				gMaxIdx = t
			}
		} else if !s.isLower(t) && s.g[t] >= gMax {
			gMax = s.g[t]
			gMaxIdx = t
		}
	}

	var qi []float64
	if gMaxIdx != -1 {
		qi = s.q.Column(gMaxIdx, s.activeSize)
	}

	// j minimizes the second-order objective decrease over I_low.
	for t := 0; t < s.activeSize; t++ {
		if s.y[t] == 1 {
			if s.isLower(t) {
				continue
			}
			gradDiff := gMax + s.g[t]
			if s.g[t] >= gMax2 {
				gMax2 = s.g[t]
			}
			if gradDiff > 0 {
				quad := s.qd[gMaxIdx] + s.qd[t] - 2*float64(s.y[gMaxIdx])*qi[t]
				if od := objDiff(gradDiff, quad); od <= objDiffMin {
					gMinIdx = t
					objDiffMin = od
				}
			}
		} else {
			if s.isUpper(t) {
				continue
			}
			gradDiff := gMax - s.g[t]
			if -s.g[t] >= gMax2 {
				gMax2 = -s.g[t]
			}
			if gradDiff > 0 {
				quad := s.qd[gMaxIdx] + s.qd[t] + 2*float64(s.y[gMaxIdx])*qi[t]
				if od := objDiff(gradDiff, quad); od <= objDiffMin {
					gMinIdx = t
					objDiffMin = od
				}
			}
		}
	}
	if gMax+gMax2 < s.eps || gMinIdx == -1 {
		return 0, 0, false
	}

	return gMaxIdx, gMinIdx, true
}

// selectNu runs the same rule separately for y=+1 and y=−1 and keeps the
// pair with the larger decrease.
func (s *state) selectNu() (i, j int, ok bool) {
	gMaxP, gMaxP2 := math.Inf(-1), math.Inf(-1)
	gMaxN, gMaxN2 := math.Inf(-1), math.Inf(-1)
	ip, in := -1, -1
	gMinIdx := -1
	objDiffMin := math.Inf(1)
	for t := 0; t < s.activeSize; t++ {
		if s.y[t] == 1 {
			if !s.isUpper(t) && -s.g[t] >= gMaxP {
				gMaxP = -s.g[t]
				ip = t
			}
		} else if !s.isLower(t) && s.g[t] >= gMaxN {
			gMaxN = s.g[t]
			in = t
		}
	}

	var qip, qin []float64
	if ip != -1 {
		qip = s.q.Column(ip, s.activeSize)
	}
	if in != -1 {
		qin = s.q.Column(in, s.activeSize)
	}

	for t := 0; t < s.activeSize; t++ {
		if s.y[t] == 1 {
			if s.isLower(t) {
				continue
			}
			gradDiff := gMaxP + s.g[t]
			if s.g[t] >= gMaxP2 {
				gMaxP2 = s.g[t]
			}
			if gradDiff > 0 {
				quad := s.qd[ip] + s.qd[t] - 2*qip[t]
				if od := objDiff(gradDiff, quad); od <= objDiffMin {
					gMinIdx = t
					objDiffMin = od
				}
			}
		} else {
			if s.isUpper(t) {
				continue
			}
			gradDiff := gMaxN - s.g[t]
			if -s.g[t] >= gMaxN2 {
				gMaxN2 = -s.g[t]
			}
			if gradDiff > 0 {
				quad := s.qd[in] + s.qd[t] - 2*qin[t]
				if od := objDiff(gradDiff, quad); od <= objDiffMin {
					gMinIdx = t
					objDiffMin = od
				}
			}
		}
	}
	if math.Max(gMaxP+gMaxP2, gMaxN+gMaxN2) < s.eps || gMinIdx == -1 {
		return 0, 0, false
	}
	if s.y[gMinIdx] == 1 {
		return ip, gMinIdx, true
	}

	return in, gMinIdx, true
}

// objDiff is the predicted objective change −b²/a with a floored at tau.
func objDiff(gradDiff, quad float64) float64 {
	if quad <= 0 {
		quad = tau
	}

	return -(gradDiff * gradDiff) / quad
}
