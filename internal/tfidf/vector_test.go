// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot_NormalizedVectorsGiveCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{
			name: "identical",
			a:    Vector{Indices: []int{0, 2}, Values: []float64{1, 1}},
			b:    Vector{Indices: []int{0, 2}, Values: []float64{1, 1}},
			want: 1,
		},
		{
			name: "orthogonal",
			a:    Vector{Indices: []int{0}, Values: []float64{1}},
			b:    Vector{Indices: []int{1}, Values: []float64{1}},
			want: 0,
		},
		{
			name: "opposite",
			a:    Vector{Indices: []int{3}, Values: []float64{2}},
			b:    Vector{Indices: []int{3}, Values: []float64{-1}},
			want: -1,
		},
		{
			name: "forty five degrees",
			a:    Vector{Indices: []int{0, 1}, Values: []float64{1, 1}},
			b:    Vector{Indices: []int{0}, Values: []float64{1}},
			want: 1 / math.Sqrt2,
		},
		{
			name: "zero vector",
			a:    Vector{},
			b:    Vector{Indices: []int{0}, Values: []float64{1}},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := unit(tt.a), unit(tt.b)
			assert.InDelta(t, tt.want, a.Dot(b), 1e-9)
			assert.InDelta(t, tt.want, b.Dot(a), 1e-9)
		})
	}
}

func TestDot_InterleavedIndices(t *testing.T) {
	a := Vector{Indices: []int{1, 4, 7, 9}, Values: []float64{1, 2, 3, 4}}
	b := Vector{Indices: []int{0, 4, 8, 9}, Values: []float64{5, 6, 7, 8}}

	assert.Equal(t, 2.0*6+4*8, a.Dot(b))
	assert.Equal(t, a.Dot(b), b.Dot(a))
}

func TestNormalize(t *testing.T) {
	v := unit(Vector{Indices: []int{0, 1}, Values: []float64{3, 4}})
	assert.Equal(t, []float64{0.6, 0.8}, v.Values)
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)

	zero := unit(Vector{})
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0.0, zero.Norm())
}

func unit(v Vector) Vector {
	out := Vector{
		Indices: append([]int(nil), v.Indices...),
		Values:  append([]float64(nil), v.Values...),
	}
	out.normalize()
	return out
}
