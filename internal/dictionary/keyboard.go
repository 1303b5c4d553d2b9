package dictionary

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var keyPos = func() map[rune][2]int {
	m := make(map[rune][2]int)
	for r, row := range keyboardRows {
		for c, ch := range row {
			m[ch] = [2]int{r, c}
		}
	}
	return m
}()

// costs weights the edit operations of weightedDL.
type costs struct {
	transpose    float64
	insDel       float64
	nearSub      float64
	diacriticSub float64
}

var defaultCosts = costs{
	transpose:    0.6,
	insDel:       0.9,
	nearSub:      0.6,
	diacriticSub: 0.2,
}

// Fold lower-cases s and removes tone and vowel marks, so "Trường" becomes
// "truong".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if r = unicode.ToLower(r); r == 'đ' {
			return 'd'
		}
		return r
	}, out)
}

// baseLetter maps a Vietnamese letter to the Latin key that types it.
func baseLetter(r rune) rune {
	for _, b := range Fold(string(r)) {
		return b
	}
	return r
}

func keyDistance(a, b rune) float64 {
	pa, oka := keyPos[baseLetter(a)]
	pb, okb := keyPos[baseLetter(b)]
	if !oka || !okb {
		return 2.5
	}
	dr := float64(pa[0] - pb[0])
	dc := float64(pa[1] - pb[1])
	return math.Sqrt(dr*dr + dc*dc)
}

func (c costs) substitution(a, b rune) float64 {
	// Letters typed with the same key differ only by marks, or d against đ.
	if baseLetter(a) == baseLetter(b) {
		return c.diacriticSub
	}
	d := keyDistance(a, b)
	if d <= 1.0 {
		return c.nearSub
	} else if d <= 1.5 {
		return 0.8
	} else if d <= 2.2 {
		return 1.2
	}
	return 1.8
}

// isOneAdjacentSwap reports whether b is a with exactly one pair of
// neighbouring letters swapped.
func isOneAdjacentSwap(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) != len(rb) || len(ra) < 2 {
		return false
	}
	diff := -1
	for i := 0; i < len(ra); i++ {
		if ra[i] != rb[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(ra) {
		return false
	}
	if ra[diff] == rb[diff+1] && ra[diff+1] == rb[diff] {
		for j := diff + 2; j < len(ra); j++ {
			if ra[j] != rb[j] {
				return false
			}
		}
		return true
	}
	return false
}
