package model

import "sort"

// Tally is an insertion-ordered counter keyed by identifier. Key order is
// first-encountered order, which is also the tie-break order for TopN.
type Tally struct {
	order  []string
	counts map[string]int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments the count for key by n.
func (t *Tally) Add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// Count returns the count for key, or zero if absent.
func (t *Tally) Count(key string) int {
	return t.counts[key]
}

// Keys returns the keys in first-encountered order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// KeySet returns the keys as a Set, preserving order.
func (t *Tally) KeySet() *Set {
	return NewSet(t.order...)
}

// Len returns the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *Tally) Total() int {
	sum := 0
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// AuthorCount pairs an author identifier with an interaction count.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// TopN returns the n highest-counted entries, descending. Equal counts
// keep first-encountered order.
func (t *Tally) TopN(n int) []AuthorCount {
	entries := make([]AuthorCount, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, AuthorCount{Author: key, Count: t.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
