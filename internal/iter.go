package internal

import (
	"iter"
)

// IterSeq2Take limits a dual-return iterator sequence to its first count values.
func IterSeq2Take[T1 any, T2 any](seq iter.Seq2[T1, T2], count int) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		n := 0
		for val1, val2 := range seq {
			if n >= count {
				return
			}
			n++
			if !yield(val1, val2) {
				return // Stop if the consumer stops
			}
		}
	}
}
