package layout

import (
	"fmt"
	"math"
	"strings"
)

// Share is a percentage in fixed point with four decimal digits.
type Share int64

const (
	shareScale = 10000

	// Whole is 100%.
	Whole Share = 100 * shareScale
)

// DefaultSplitRatio is the fraction of the last sibling handed to a new one.
const DefaultSplitRatio = 0.37

// ShareOf converts a percentage to a Share, rounding to four decimals.
func ShareOf(pct float64) Share {
	return Share(math.Round(pct * shareScale))
}

// Percent returns s as a percentage.
func (s Share) Percent() float64 {
	return float64(s) / shareScale
}

func (s Share) String() string {
	return fmt.Sprintf("%g%%", s.Percent())
}

// Sequence holds the sizes of the siblings at one level, in sibling order.
// It is empty iff the level has no children; otherwise it sums to Whole.
type Sequence struct {
	shares []Share
}

// NewSequence builds a sequence from percentages. It does not settle.
func NewSequence(pcts ...float64) Sequence {
	s := Sequence{shares: make([]Share, len(pcts))}
	for i, p := range pcts {
		s.shares[i] = ShareOf(p)
	}
	return s
}

// Len returns the number of siblings.
func (s *Sequence) Len() int { return len(s.shares) }

// At returns the share at i.
func (s *Sequence) At(i int) Share { return s.shares[i] }

// Set overwrites the share at i.
func (s *Sequence) Set(i int, v Share) { s.shares[i] = v }

// Percentages returns a copy of the sequence as percentages.
func (s *Sequence) Percentages() []float64 {
	out := make([]float64, len(s.shares))
	for i, v := range s.shares {
		out[i] = v.Percent()
	}
	return out
}

// Sum returns the total of all shares.
func (s *Sequence) Sum() Share {
	var total Share
	for _, v := range s.shares {
		total += v
	}
	return total
}

// Valid reports whether the sum invariant holds and no share is negative.
func (s *Sequence) Valid() bool {
	for _, v := range s.shares {
		if v < 0 {
			return false
		}
	}
	if len(s.shares) == 0 {
		return true
	}
	return s.Sum() == Whole
}

// Split makes room for a new last sibling. The new sibling receives ratio of
// what the current last one had; an empty sequence gets a single Whole.
func (s *Sequence) Split(ratio float64) {
	n := len(s.shares)
	if n == 0 {
		s.shares = append(s.shares, Whole)
		return
	}
	last := s.shares[n-1]
	added := Share(math.Round(float64(last) * ratio))
	s.shares[n-1] = last - added
	s.shares = append(s.shares, added)
}

// MergeAt removes the share at i and hands it to the previous sibling, or to
// the next one when i is first. Removing the only share empties the sequence.
// It returns the index of the sibling that absorbed the share, or -1.
func (s *Sequence) MergeAt(i int) int {
	if len(s.shares) == 1 {
		s.shares = s.shares[:0]
		return -1
	}
	freed := s.shares[i]
	s.shares = append(s.shares[:i], s.shares[i+1:]...)
	into := i - 1
	if i == 0 {
		into = 0
	}
	s.shares[into] += freed
	return into
}

// AdjustPair moves delta from i to j. Callers settle afterwards.
func (s *Sequence) AdjustPair(i, j int, delta Share) {
	s.shares[i] -= delta
	s.shares[j] += delta
}

// Settle recomputes the share at pinned as Whole minus all the others, so
// any rounding error is absorbed there.
func (s *Sequence) Settle(pinned int) {
	if len(s.shares) == 0 {
		return
	}
	var others Share
	for i, v := range s.shares {
		if i != pinned {
			others += v
		}
	}
	s.shares[pinned] = Whole - others
}

// Insert places v at i, shifting later shares right.
func (s *Sequence) Insert(i int, v Share) {
	s.shares = append(s.shares, 0)
	copy(s.shares[i+1:], s.shares[i:])
	s.shares[i] = v
}

// Move relocates the share at i so it lands before the share currently at j
// (j may equal Len). It returns the new index of the moved share.
func (s *Sequence) Move(i, j int) int {
	return moveElement(s.shares, i, j)
}

func (s *Sequence) String() string {
	parts := make([]string, len(s.shares))
	for i, v := range s.shares {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// moveElement moves xs[i] in place so it lands before the element currently
// at j, and returns its new index.
func moveElement[T any](xs []T, i, j int) int {
	to := j
	if i < j {
		to = j - 1
	}
	if to == i {
		return i
	}
	v := xs[i]
	if i < to {
		copy(xs[i:to], xs[i+1:to+1])
	} else {
		copy(xs[to+1:i+1], xs[to:i])
	}
	xs[to] = v
	return to
}
