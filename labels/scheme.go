// Package labels maps class suffixes to numeric class codes and splits
// annotated chips into training and test partitions.
package labels

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownScheme = errors.New("labels: unknown label scheme")

// Scheme is a named grouping policy: which class suffixes are valid and the
// code each maps to.
type Scheme struct {
	Name  string
	Codes map[string]int
}

// UnknownSuffixError reports a suffix that the active scheme does not define.
type UnknownSuffixError struct {
	Scheme string
	Suffix string
}

func (e *UnknownSuffixError) Error() string {
	return fmt.Sprintf("Suffix %q is not defined by label scheme %s", e.Suffix, e.Scheme)
}

// Code returns the class code for suffix.
func (s Scheme) Code(suffix string) (int, error) {
	code, exists := s.Codes[suffix]
	if !exists {
		return 0, &UnknownSuffixError{Scheme: s.Name, Suffix: suffix}
	}

	return code, nil
}

// Registry holds the schemes available to a run, keyed by name. Build it
// once and do not modify it afterwards.
type Registry map[string]Scheme

// DefaultRegistry returns the two-class (normal vs cancer) and three-class
// (normal vs polyp vs cancer) schemes.
func DefaultRegistry() Registry {
	return Registry{
		"N_vs_C":      {Name: "N_vs_C", Codes: map[string]int{"N": 0, "C": 1}},
		"N_vs_P_vs_C": {Name: "N_vs_P_vs_C", Codes: map[string]int{"N": 0, "P": 1, "C": 2}},
	}
}

// NewRegistry builds a registry from name => suffix => code maps, as they
// appear in a JSON configuration file.
func NewRegistry(codes map[string]map[string]int) Registry {
	out := make(Registry, len(codes))
	for name, table := range codes {
		copied := make(map[string]int, len(table))
		for suffix, code := range table {
			copied[suffix] = code
		}
		out[name] = Scheme{Name: name, Codes: copied}
	}

	return out
}

// Names lists the registered schemes, sorted.
func (r Registry) Names() []string {
	out := make([]string, 0, len(r))
	for name := range r {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Lookup returns the named scheme.
func (r Registry) Lookup(name string) (Scheme, error) {
	s, exists := r[name]
	if !exists {
		return Scheme{}, fmt.Errorf("%w: %q. Valid scheme names include: %s", ErrUnknownScheme, name, strings.Join(r.Names(), ", "))
	}

	return s, nil
}
