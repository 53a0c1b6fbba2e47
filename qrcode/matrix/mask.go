package matrix

// The eight XOR mask predicates of ISO/IEC 18004 §7.8.2, indexed by mask
// pattern reference (0-7). A true result inverts the module at (r, c).
var maskPredicates = [8]func(r, c int) bool{
	func(r, c int) bool { return (r+c)%2 == 0 },
	func(r, c int) bool { return r%2 == 0 },
	func(r, c int) bool { return c%3 == 0 },
	func(r, c int) bool { return (r+c)%3 == 0 },
	func(r, c int) bool { return (r/2+c/3)%2 == 0 },
	func(r, c int) bool { return (r*c)%2+(r*c)%3 == 0 },
	func(r, c int) bool { return ((r*c)%2+(r*c)%3)%2 == 0 },
	func(r, c int) bool { return ((r*c)%3+(r+c)%2)%2 == 0 },
}

const (
	penaltyN1 = 3  // rule 1: per same-color run of 5, plus 1 per module beyond 5
	penaltyN2 = 3  // rule 2: per 2x2 same-color block
	penaltyN3 = 40 // rule 3: per finder-like 1:1:3:1:1 run pattern
	penaltyN4 = 10 // rule 4: per 5% step the dark ratio sits off 50%
)

// finderPenalty tracks the last runs of a single row or column so rule 3
// (finder-like patterns) can be scored as the scan proceeds, following the
// same single-pass technique as rule 1.
type finderPenalty struct {
	size    int
	history [7]int
}

func newFinderPenalty(size int) *finderPenalty {
	return &finderPenalty{size: size}
}

// addHistory pushes a newly terminated run length to the front, dropping
// the oldest. The very first run is extended by the implicit light border
// outside the symbol.
func (p *finderPenalty) addHistory(runLength int) {
	if p.history[0] == 0 {
		runLength += p.size
	}
	copy(p.history[1:], p.history[:len(p.history)-1])
	p.history[0] = runLength
}

// countPatterns reports how many finder-like patterns (proportions
// 1:1:3:1:1 in units of the narrowest run n) are centered on the run just
// pushed, assuming it ended a light run. Returns 0, 1, or 2.
func (p finderPenalty) countPatterns() int {
	n := p.history[1]
	if n > p.size*3 {
		return 0
	}
	core := n > 0 && p.history[2] == n && p.history[3] == n*3 && p.history[4] == n && p.history[5] == n
	count := 0
	if core && p.history[0] >= n*4 && p.history[6] >= n {
		count++
	}
	if core && p.history[6] >= n*4 && p.history[0] >= n {
		count++
	}
	return count
}

// terminateAndCount closes out the final run of a row or column (extended
// by the implicit light border) and returns its finder-pattern count.
func (p *finderPenalty) terminateAndCount(currentColorDark bool, runLength int) int {
	if currentColorDark {
		p.addHistory(runLength)
		runLength = 0
	}
	runLength += p.size
	p.addHistory(runLength)
	return p.countPatterns()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// penaltyScore computes the ISO/IEC 18004 §7.8.3.1 penalty for the
// matrix's current module values (mask already applied), covering rule 1
// (row/column runs), rule 2 (2x2 blocks), rule 3 (finder-like patterns) and
// rule 4 (dark/light balance). This is the §7.8.3.1 row/column-run
// definition rather than a sliding 3x3 window.
func (m *Matrix) penaltyScore() int {
	size := m.size
	result := 0

	for r := 0; r < size; r++ {
		var runColor bool
		runLength := 0
		hist := newFinderPenalty(size)
		for c := 0; c < size; c++ {
			dark := m.dark(r, c)
			if dark == runColor {
				runLength++
				if runLength == 5 {
					result += penaltyN1
				} else if runLength > 5 {
					result++
				}
			} else {
				hist.addHistory(runLength)
				if !runColor {
					result += hist.countPatterns() * penaltyN3
				}
				runColor = dark
				runLength = 1
			}
		}
		result += hist.terminateAndCount(runColor, runLength) * penaltyN3
	}

	for c := 0; c < size; c++ {
		var runColor bool
		runLength := 0
		hist := newFinderPenalty(size)
		for r := 0; r < size; r++ {
			dark := m.dark(r, c)
			if dark == runColor {
				runLength++
				if runLength == 5 {
					result += penaltyN1
				} else if runLength > 5 {
					result++
				}
			} else {
				hist.addHistory(runLength)
				if !runColor {
					result += hist.countPatterns() * penaltyN3
				}
				runColor = dark
				runLength = 1
			}
		}
		result += hist.terminateAndCount(runColor, runLength) * penaltyN3
	}

	for r := 0; r < size-1; r++ {
		for c := 0; c < size-1; c++ {
			color := m.dark(r, c)
			if color == m.dark(r, c+1) && color == m.dark(r+1, c) && color == m.dark(r+1, c+1) {
				result += penaltyN2
			}
		}
	}

	dark := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if m.dark(r, c) {
				dark++
			}
		}
	}
	total := size * size
	k := (absInt(dark*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}
