// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	v := fit(nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drops stop words before forming bigrams",
			text: "Deep learning for genomics",
			want: []string{"deep", "learning", "genomics", "deep learning", "learning genomics"},
		},
		{
			name: "drops single-character tokens and punctuation",
			text: "A x-ray: CT/MRI, 3D",
			want: []string{"ray", "ct", "mri", "3d", "ray ct", "ct mri", "mri 3d"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "only stop words",
			text: "the and of",
			want: nil,
		},
		{
			name: "keeps unicode letters",
			text: "Über Zellkultur",
			want: []string{"über", "zellkultur", "über zellkultur"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Analyze(tt.text))
		})
	}
}

func TestFitTransform_Vocabulary(t *testing.T) {
	v, matrix := FitTransform([]string{
		"deep learning for genomics",
		"statistical genomics methods",
	})

	require.Len(t, matrix, 2)
	assert.Equal(t, []string{
		"deep", "deep learning", "genomics", "genomics methods",
		"learning", "learning genomics", "methods",
		"statistical", "statistical genomics",
	}, terms(v))
	assert.Equal(t, 9, v.VocabularySize())

	shared, ok := idf(v, "genomics")
	require.True(t, ok)
	rare, ok := idf(v, "deep")
	require.True(t, ok)
	assert.InDelta(t, 1.0, shared, 1e-12, "term in every document gets idf 1")
	assert.InDelta(t, math.Log(3.0/2.0)+1, rare, 1e-12)

	_, ok = idf(v, "for")
	assert.False(t, ok, "stop words never enter the vocabulary")
}

func TestFitTransform_RowsAreUnitLength(t *testing.T) {
	_, matrix := FitTransform([]string{
		"protein folding with graph networks",
		"graph networks graph networks",
		"",
	})

	assert.InDelta(t, 1.0, matrix[0].Norm(), 1e-12)
	assert.InDelta(t, 1.0, matrix[1].Norm(), 1e-12)
	assert.True(t, matrix[2].IsZero(), "empty title yields the zero vector")
	assert.Equal(t, 0.0, matrix[2].Norm())
}

func TestSublinearTF(t *testing.T) {
	docs := []string{"cell cell cell atlas", "tumor atlas"}

	sub, subRows := FitTransform(docs)
	lin, linRows := FitTransform(docs, WithSublinearTF(false))
	require.Equal(t, terms(sub), terms(lin))

	cell := indexOf(terms(sub), "cell")
	atlas := indexOf(terms(sub), "atlas")

	ratio := func(vec Vector) float64 {
		return weight(vec, cell) / weight(vec, atlas)
	}
	idfCell, _ := idf(sub, "cell")
	idfAtlas, _ := idf(sub, "atlas")

	assert.InDelta(t, (1+math.Log(3))*idfCell/idfAtlas, ratio(subRows[0]), 1e-9)
	assert.InDelta(t, 3*idfCell/idfAtlas, ratio(linRows[0]), 1e-9)
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	v := fit([]string{"single cell sequencing"})

	assert.True(t, v.Transform("unrelated topic xyz").IsZero())
	assert.True(t, v.Transform("   ").IsZero())
	assert.False(t, v.Transform("cell atlas").IsZero())
}

func TestTransform_MatchesFittedRow(t *testing.T) {
	docs := []string{"microbiome of the human gut", "gut microbiome diversity"}
	v, matrix := FitTransform(docs)

	for i, doc := range docs {
		assert.InDelta(t, 1.0, v.Transform(doc).Dot(matrix[i]), 1e-12)
	}
}

func TestWithOptions(t *testing.T) {
	v := fit([]string{"the cell"}, WithStopWords(nil), WithNGramRange(1, 1))
	assert.Equal(t, []string{"cell", "the"}, terms(v))

	v = fit([]string{"alpha beta gamma"}, WithNGramRange(2, 3))
	assert.Equal(t, []string{"alpha beta", "alpha beta gamma", "beta gamma"}, terms(v))
}

func fit(docs []string, opts ...Option) *Vectorizer {
	v, _ := FitTransform(docs, opts...)
	return v
}

func terms(v *Vectorizer) []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

func idf(v *Vectorizer, term string) (float64, bool) {
	i, ok := v.vocab[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

func indexOf(terms []string, term string) int {
	for i, t := range terms {
		if t == term {
			return i
		}
	}
	return -1
}

func weight(vec Vector, idx int) float64 {
	for i, j := range vec.Indices {
		if j == idx {
			return vec.Values[i]
		}
	}
	return 0
}
