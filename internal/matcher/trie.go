package matcher

import "unicode"

type node struct {
	children map[rune]*node
	ruleIdx  []int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// insert adds a lower-cased pattern that resolves to rule i.
func (n *node) insert(pattern string, i int) {
	cur := n
	for _, r := range pattern {
		r = unicode.ToLower(r)
		next, ok := cur.children[r]
		if !ok {
			next = newNode()
			cur.children[r] = next
		}
		cur = next
	}
	cur.ruleIdx = append(cur.ruleIdx, i)
}

func (n *node) empty() bool { return len(n.children) == 0 }
