// Package digit provides the base-aware digit arithmetic that drives happy
// number classification: the digit-square-sum map, the non-descending digit
// test, and canonicalization of a number to its permutation-class
// representative.
package digit

// SumOfSquares returns the sum of the squares of the base-`base` digits of n.
// This is the map whose iteration determines happiness. SumOfSquares(0) == 0.
func SumOfSquares(n, base uint64) uint64 {
	var sum uint64
	for n > 0 {
		d := n % base
		sum += d * d
		n /= base
	}
	return sum
}

// Sorted reports whether the base-`base` digits of n are non-descending when
// read from most significant to least significant (e.g. 123 is sorted, 321
// is not). Such numbers are the canonical representatives of their
// permutation class. Zero and single-digit numbers are trivially sorted.
func Sorted(n, base uint64) bool {
	prev := base
	for n > 0 {
		d := n % base
		if d > prev {
			return false
		}
		prev = d
		n /= base
	}
	return true
}

// Canonicalize rearranges the digits of n into non-descending reading order
// and returns the resulting number, e.g. 312 becomes 123. Zero digits are
// discarded: they contribute nothing to the digit-square sum, and no
// multi-digit sorted number contains one, so dropping them keeps the result
// inside the set of numbers Sorted accepts.
//
// The invariant that matters for classification is
// SumOfSquares(Canonicalize(n, b), b) == SumOfSquares(n, b).
func Canonicalize(n, base uint64) uint64 {
	counts := make([]uint8, base)
	for n > 0 {
		counts[n%base]++
		n /= base
	}
	var result uint64
	for d := uint64(1); d < base; d++ {
		for i := uint8(0); i < counts[d]; i++ {
			result *= base
			result += d
		}
	}
	return result
}
