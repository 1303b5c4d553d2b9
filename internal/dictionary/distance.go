package dictionary

import "math"

// editDistance is the unit-cost Damerau-Levenshtein distance over runes,
// counting a swap of neighbouring letters as one edit.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}

// similarity is 1 - editDistance/longest length, in [0, 1]. A swap of
// neighbouring letters costs one edit, like a single wrong letter.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 0
	}
	return 1 - float64(editDistance(a, b))/float64(longest)
}

// weightedDL is a Damerau-Levenshtein distance where substitutions cost
// less between neighbouring keys and between letters that differ only by
// their marks.
func (c costs) weightedDL(a, b string) float64 {
	if isOneAdjacentSwap(a, b) {
		return c.transpose
	}
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return float64(lb) * c.insDel
	}
	if lb == 0 {
		return float64(la) * c.insDel
	}
	prev2 := make([]float64, lb+1)
	prev := make([]float64, lb+1)
	curr := make([]float64, lb+1)
	for j := 1; j <= lb; j++ {
		prev[j] = float64(j) * c.insDel
	}
	for i := 1; i <= la; i++ {
		curr[0] = float64(i) * c.insDel
		for j := 1; j <= lb; j++ {
			sub := 0.0
			if ra[i-1] != rb[j-1] {
				sub = c.substitution(ra[i-1], rb[j-1])
			}
			best := math.Min(prev[j]+c.insDel, math.Min(curr[j-1]+c.insDel, prev[j-1]+sub))
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = math.Min(best, prev2[j-2]+c.transpose)
			}
			curr[j] = best
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}
