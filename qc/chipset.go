package qc

import (
	"sort"

	"github.com/carbocation/chipqc/chipid"
)

// ChipSet holds normalized chip identifiers.
type ChipSet map[string]struct{}

// NewChipSet normalizes each id and collects them into a set.
func NewChipSet(ids ...string) ChipSet {
	out := make(ChipSet, len(ids))
	for _, id := range ids {
		out.Add(id)
	}

	return out
}

func (s ChipSet) Add(id string) {
	s[chipid.Normalize(id)] = struct{}{}
}

// Contains reports whether id, normalized, is in the set.
func (s ChipSet) Contains(id string) bool {
	_, exists := s[chipid.Normalize(id)]
	return exists
}

// ContainsExact reports membership of id without normalizing it first.
func (s ChipSet) ContainsExact(id string) bool {
	_, exists := s[id]
	return exists
}

func (s ChipSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexical order.
func (s ChipSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func (s ChipSet) Equal(other ChipSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, exists := other[k]; !exists {
			return false
		}
	}

	return true
}

// Intersect returns the chips present in every set. The inputs are not
// modified.
func Intersect(sets ...ChipSet) (ChipSet, error) {
	if len(sets) == 0 {
		return nil, ErrNoCriteria
	}

	// Iterate over the smallest set
	smallest := 0
	for i, s := range sets {
		if len(s) < len(sets[smallest]) {
			smallest = i
		}
	}

	out := make(ChipSet, len(sets[smallest]))
Outer:
	for k := range sets[smallest] {
		for _, s := range sets {
			if _, exists := s[k]; !exists {
				continue Outer
			}
		}
		out[k] = struct{}{}
	}

	return out, nil
}
