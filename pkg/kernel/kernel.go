// Package kernel tracks the small fixed alphabet of kernel characters
// embedded in token spellings. It is descriptive bookkeeping only: it
// never validates, never fails, and feeds aggregate reporting rather
// than the hazard checks.
package kernel

import (
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// Signature is the ordered subsequence of kernel characters found in one
// token spelling, left to right. It may be empty.
type Signature []byte

// String renders the signature as a plain string, "" when empty.
func (s Signature) String() string {
	return string(s)
}

// Empty reports whether the token had no kernel contact.
func (s Signature) Empty() bool {
	return len(s) == 0
}

// Tracker extracts signatures and keeps additive, order-independent
// counters. A Tracker is scoped to one folio; Merge folds trackers from
// independently processed folios into corpus totals.
type Tracker struct {
	alphabet [256]bool

	Frequency   map[byte]int    // per-symbol occurrence count
	Transitions map[[2]byte]int // adjacent-pair counts, self-pairs included
	EmptyCount  int             // tokens with no kernel contact
	TokenCount  int             // tokens observed
}

// NewTracker builds a tracker over the configured kernel alphabet.
func NewTracker(ts *tables.Set) *Tracker {
	t := &Tracker{
		Frequency:   make(map[byte]int),
		Transitions: make(map[[2]byte]int),
	}
	for _, sym := range ts.Kernel.Alphabet {
		t.alphabet[sym[0]] = true
	}
	return t
}

// Extract returns the kernel signature of a spelling without recording
// anything.
func (t *Tracker) Extract(spelling string) Signature {
	var sig Signature
	for i := 0; i < len(spelling); i++ {
		if t.alphabet[spelling[i]] {
			sig = append(sig, spelling[i])
		}
	}
	return sig
}

// Observe extracts the signature and folds it into the counters.
func (t *Tracker) Observe(spelling string) Signature {
	sig := t.Extract(spelling)
	t.TokenCount++
	if sig.Empty() {
		t.EmptyCount++
		return sig
	}
	for i, ch := range sig {
		t.Frequency[ch]++
		if i > 0 {
			t.Transitions[[2]byte{sig[i-1], ch}]++
		}
	}
	return sig
}

// Merge adds other's counters into t. Addition is order-independent, so
// per-folio trackers can be merged in any order after a parallel run.
func (t *Tracker) Merge(other *Tracker) {
	for ch, n := range other.Frequency {
		t.Frequency[ch] += n
	}
	for pair, n := range other.Transitions {
		t.Transitions[pair] += n
	}
	t.EmptyCount += other.EmptyCount
	t.TokenCount += other.TokenCount
}
