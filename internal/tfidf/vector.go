// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse term-weight vector. Indices are strictly increasing
// vocabulary positions and Values holds the matching weights.
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero reports whether the vector has no non-zero weights.
func (a Vector) IsZero() bool { return len(a.Indices) == 0 }

// Dot returns the dot product of two sparse vectors. For vectors produced
// by a Vectorizer this is their cosine similarity.
func (a Vector) Dot(b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length of the vector.
func (a Vector) Norm() float64 {
	var sq float64
	for _, x := range a.Values {
		sq += x * x
	}
	return math.Sqrt(sq)
}

func (a *Vector) normalize() {
	n := a.Norm()
	if n == 0 {
		return
	}
	for i := range a.Values {
		a.Values[i] /= n
	}
}

func (a *Vector) sortByIndex() {
	sort.Sort(byIndex{a})
}

type byIndex struct{ v *Vector }

func (s byIndex) Len() int           { return len(s.v.Indices) }
func (s byIndex) Less(i, j int) bool { return s.v.Indices[i] < s.v.Indices[j] }
func (s byIndex) Swap(i, j int) {
	s.v.Indices[i], s.v.Indices[j] = s.v.Indices[j], s.v.Indices[i]
	s.v.Values[i], s.v.Values[j] = s.v.Values[j], s.v.Values[i]
}
