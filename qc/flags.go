package qc

import (
	"sort"
	"strings"
)

// Flags maps a normalized chip id to the criteria it failed.
type Flags map[string]flagSet

func (f Flags) AddFlag(chip, criterion string) {
	set, exists := f[chip]
	if !exists {
		set = make(flagSet)
	}
	set[criterion] = struct{}{}
	f[chip] = set
}

// Failed returns the sorted criteria that chip failed.
func (f Flags) Failed(chip string) []string {
	return f[chip].sorted()
}

// Counts returns the number of chips failing each criterion.
func (f Flags) Counts() map[string]int {
	out := make(map[string]int)
	for _, flags := range f {
		for v := range flags {
			out[v]++
		}
	}

	return out
}

// Flag records, for every chip in the table, each criterion that did not
// admit it.
func Flag(t Table, criteria []Criterion) (Flags, error) {
	out := Flags{}
	all := All(t)

	for _, c := range criteria {
		admitted, err := Admit(t, c)
		if err != nil {
			return nil, err
		}
		for chip := range all {
			if !admitted.ContainsExact(chip) {
				out.AddFlag(chip, c.Label())
			}
		}
	}

	return out, nil
}

type flagSet map[string]struct{}

func (fs flagSet) sorted() []string {
	sb := make([]string, 0, len(fs))
	for v := range fs {
		sb = append(sb, v)
	}
	sort.Strings(sb)

	return sb
}

func (fs flagSet) String() string {
	if len(fs) == 0 {
		return ""
	}

	return strings.Join(fs.sorted(), "|")
}
