// Package dictionary is the word list behind spell checking: which words are
// valid, how common they are, and which dictionary words resemble a
// misspelling.
//
// The list is a plain text file with one "word<TAB>count" entry per line.
// Entries may contain spaces, in which case the count must be tab or space
// separated from the final syllable. Lines of the form "wrong => right" record
// common misspellings and "#" starts a comment.
package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"
)

var ErrEmptyDictionary = errors.New("dictionary has no words")

//go:embed default_words.txt
var defaultWords []byte

// similarityThreshold is the minimum similarity for a dictionary word to be
// offered as a suggestion.
const similarityThreshold = 0.7

// distMemoSize bounds the memo of keyboard distances between queries and
// candidates.
const distMemoSize = 4096

type Dictionary struct {
	mu           sync.RWMutex
	freq         map[string]int
	custom       map[string]bool
	commonErrors map[string]string
	longest      int

	costs    costs
	distMemo *lru.Cache[string, float64] // a+"\x00"+b
}

// Default returns the dictionary built from the embedded word list.
func Default() (*Dictionary, error) {
	return Parse(defaultWords)
}

// LoadFile memory-maps a word list and parses it.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dictionary: %w", err)
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDictionary)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap dictionary: %w", err)
	}
	defer m.Unmap()
	return Parse(m)
}

// Parse reads a word list. Every string is copied out of data.
func Parse(data []byte) (*Dictionary, error) {
	memo, err := lru.New[string, float64](distMemoSize)
	if err != nil {
		return nil, fmt.Errorf("create distance memo: %w", err)
	}
	d := &Dictionary{
		freq:         make(map[string]int),
		custom:       make(map[string]bool),
		commonErrors: make(map[string]string),
		costs:        defaultCosts,
		distMemo:     memo,
	}
	s := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if wrong, right, ok := strings.Cut(line, "=>"); ok {
			wrong, right = normalize(wrong), norm.NFC.String(strings.TrimSpace(right))
			if wrong == "" || right == "" {
				return nil, fmt.Errorf("dictionary line %d: malformed misspelling %q", lineNo, line)
			}
			d.commonErrors[wrong] = right
			continue
		}
		word, count := splitEntry(line)
		if word == "" {
			continue
		}
		d.freq[word] += count
		d.longest = max(d.longest, len(strings.Fields(word)))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(d.freq) == 0 {
		return nil, ErrEmptyDictionary
	}
	return d, nil
}

// splitEntry separates a word from its trailing count. A missing or
// unreadable count defaults to one.
func splitEntry(line string) (string, int) {
	fields := strings.Fields(line)
	count := 1
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			count = n
			fields = fields[:len(fields)-1]
		} else if fv, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
			count = int(fv)
			fields = fields[:len(fields)-1]
		}
	}
	return normalize(strings.Join(fields, " ")), max(count, 1)
}

func normalize(w string) string {
	return strings.ToLower(strings.Join(strings.Fields(norm.NFC.String(w)), " "))
}

// IsCorrectWord reports whether word, ignoring case, is a dictionary or
// custom word.
func (d *Dictionary) IsCorrectWord(word string) bool {
	lw := normalize(word)
	if lw == "" {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.freq[lw] > 0 || d.custom[lw]
}

// Correction returns the recorded fix for a common misspelling.
func (d *Dictionary) Correction(word string) (string, bool) {
	fix, ok := d.commonErrors[normalize(word)]
	return fix, ok
}

// Len counts dictionary entries, custom words excluded.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.freq)
}

// LongestEntry is the largest number of syllables in one entry. It is the
// default merge width of the tokenizer.
func (d *Dictionary) LongestEntry() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.longest
}

// AddWord accepts word as correct from now on.
func (d *Dictionary) AddWord(word string) {
	lw := normalize(word)
	if lw == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.custom[lw] = true
	d.longest = max(d.longest, len(strings.Fields(lw)))
}

// RemoveWord forgets a custom word. Words from the list itself stay.
func (d *Dictionary) RemoveWord(word string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.custom, normalize(word))
}

// CustomWords lists the custom words in sorted order.
func (d *Dictionary) CustomWords() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.custom))
	for w := range d.custom {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

type suggestion struct {
	word string
	freq int
	cost float64
}

// GetSuggestions returns up to limit candidates for word. A recorded fix for
// a common misspelling comes first. Similar dictionary words follow, most
// frequent first, ties broken by keyboard distance.
func (d *Dictionary) GetSuggestions(word string, limit int) []string {
	lw := normalize(word)
	if lw == "" || limit <= 0 {
		return nil
	}
	var out []string
	if fix, ok := d.Correction(lw); ok {
		out = append(out, fix)
	}

	n := len([]rune(lw))
	var found []suggestion
	d.mu.RLock()
	consider := func(w string, freq int) {
		m := len([]rune(w))
		// Similarity cannot exceed the threshold when lengths differ this much.
		if float64(abs(n-m)) >= (1-similarityThreshold)*float64(max(n, m)) {
			return
		}
		if similarity(lw, w) > similarityThreshold {
			found = append(found, suggestion{word: w, freq: freq})
		}
	}
	for w, f := range d.freq {
		consider(w, f)
	}
	for w := range d.custom {
		if _, ok := d.freq[w]; !ok {
			consider(w, 0)
		}
	}
	d.mu.RUnlock()

	for i := range found {
		found[i].cost = d.distance(lw, found[i].word)
	}
	slices.SortFunc(found, func(a, b suggestion) int {
		switch {
		case a.freq != b.freq:
			return b.freq - a.freq
		case a.cost < b.cost:
			return -1
		case a.cost > b.cost:
			return 1
		default:
			return strings.Compare(a.word, b.word)
		}
	})
	for _, s := range found {
		if len(out) >= limit {
			break
		}
		if !slices.Contains(out, s.word) {
			out = append(out, s.word)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (d *Dictionary) distance(a, b string) float64 {
	key := a + "\x00" + b
	if v, ok := d.distMemo.Get(key); ok {
		return v
	}
	res := d.costs.weightedDL(a, b)
	d.distMemo.Add(key, res)
	return res
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
