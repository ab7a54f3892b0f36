// Package morph splits token spellings into their structural parts: an
// optional articulator, a required prefix, a middle, and an optional
// suffix. Everything is ordered table lookup; there is no scoring and no
// randomness, so decomposition is deterministic and idempotent.
package morph

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// Status reports the outcome of a decomposition attempt. None of the
// statuses are errors: undecomposable and unknown-middle tokens are
// expected structural outcomes routed to the residue path.
type Status int

const (
	// StatusOK means every part resolved against the tables.
	StatusOK Status = iota
	// StatusMiddleUnknown means the token decomposed but its middle is
	// outside the known vocabulary. Classification still proceeds.
	StatusMiddleUnknown
	// StatusUndecomposable means no prefix matched. The token carries no
	// parts and is routed to the residue bucket.
	StatusUndecomposable
)

// String returns the status name used in reports.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMiddleUnknown:
		return "middle-unknown"
	case StatusUndecomposable:
		return "undecomposable"
	default:
		return "invalid"
	}
}

// Decomposition is the structural split of one token spelling.
// For any status other than StatusUndecomposable, Articulator + Prefix +
// Middle + Suffix reconstructs Raw exactly.
type Decomposition struct {
	Raw         string
	Articulator string
	Prefix      string
	Middle      string
	Suffix      string
	Status      Status
}

// Spelling reconstructs the spelling from the parts.
func (d Decomposition) Spelling() string {
	return d.Articulator + d.Prefix + d.Middle + d.Suffix
}

// HasSuffix reports whether a suffix was stripped. This is the third
// component of the classification key.
func (d Decomposition) HasSuffix() bool {
	return d.Suffix != ""
}

// Decomposable reports whether the token split at all.
func (d Decomposition) Decomposable() bool {
	return d.Status != StatusUndecomposable
}

// Decomposer performs table-driven decomposition. It is immutable after
// construction and safe for concurrent use.
type Decomposer struct {
	articulators []string
	prefixes     []string
	suffixes     []string
	middles      map[string]bool
}

// NewDecomposer prepares a decomposer from the loaded tables. Candidate
// lists are ordered longest-first; entries of equal length keep their
// table declaration order, which is the documented tie-break.
func NewDecomposer(ts *tables.Set) *Decomposer {
	return &Decomposer{
		articulators: byLength(ts.Articulators),
		prefixes:     byLength(ts.Prefixes),
		suffixes:     byLength(ts.Suffixes),
		middles:      toSet(ts.Middles),
	}
}

// Decompose splits a spelling. It never fails: tokens with no matching
// prefix come back with StatusUndecomposable.
func (dc *Decomposer) Decompose(spelling string) Decomposition {
	d := Decomposition{Raw: spelling}

	// An articulator is optional and is only accepted when a prefix
	// still follows it; "daiin" reads as prefix "da", not articulator
	// "d" + an unparseable remainder.
	art, rest := "", spelling
	if prefix := dc.matchPrefix(spelling); prefix == "" {
		for _, a := range dc.articulators {
			if strings.HasPrefix(spelling, a) && dc.matchPrefix(spelling[len(a):]) != "" {
				art, rest = a, spelling[len(a):]
				break
			}
		}
	}

	prefix := dc.matchPrefix(rest)
	if prefix == "" {
		d.Status = StatusUndecomposable
		return d
	}
	rest = rest[len(prefix):]

	suffix := ""
	for _, s := range dc.suffixes {
		if len(rest) >= len(s) && strings.HasSuffix(rest, s) {
			suffix = s
			break
		}
	}
	middle := rest[:len(rest)-len(suffix)]

	d.Articulator = art
	d.Prefix = prefix
	d.Middle = middle
	d.Suffix = suffix
	if middle != "" && !dc.middles[middle] {
		d.Status = StatusMiddleUnknown
	}
	return d
}

// matchPrefix returns the longest prefix-table entry matching the front
// of s, or "".
func (dc *Decomposer) matchPrefix(s string) string {
	for _, p := range dc.prefixes {
		if strings.HasPrefix(s, p) {
			return p
		}
	}
	return ""
}

// KnownMiddle reports whether m is in the middle vocabulary. The empty
// middle is always known.
func (dc *Decomposer) KnownMiddle(m string) bool {
	return m == "" || dc.middles[m]
}

func byLength(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

func toSet(entries []string) map[string]bool {
	m := make(map[string]bool, len(entries))
	for _, e := range entries {
		m[e] = true
	}
	return m
}
