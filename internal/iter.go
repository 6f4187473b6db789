package internal

import (
	"fmt"
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Named yields each value of a slice, keyed by a name formatted
// from its index.
func IterSeq2Named[T any](format string, values []T) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for n, value := range values {
			if !yield(fmt.Sprintf(format, n), value) {
				return
			}
		}
	}
}
