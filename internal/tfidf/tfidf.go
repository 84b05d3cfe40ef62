// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tfidf turns short texts into L2-normalized TF-IDF vectors.
// Implements: similarity index term weighting (unigram and bigram
// vocabulary, English stop words, sublinear TF, smoothed IDF);
//
//	docs/ARCHITECTURE § Similarity Index.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]{2,}`)

// Vectorizer holds a fitted vocabulary and its inverse document frequencies.
// A fitted Vectorizer is never modified and is safe for concurrent use.
type Vectorizer struct {
	vocab     map[string]int
	terms     []string
	idf       []float64
	stopWords map[string]struct{}
	minN      int
	maxN      int
	sublinear bool
}

// Option configures a Vectorizer before fitting.
type Option func(*Vectorizer)

// WithStopWords replaces the default English stop-word list. A nil or empty
// list disables stop-word removal.
func WithStopWords(words []string) Option {
	return func(v *Vectorizer) {
		v.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			v.stopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithNGramRange sets the inclusive n-gram range (default 1 to 2).
func WithNGramRange(minN, maxN int) Option {
	return func(v *Vectorizer) {
		if minN < 1 {
			minN = 1
		}
		if maxN < minN {
			maxN = minN
		}
		v.minN, v.maxN = minN, maxN
	}
}

// WithSublinearTF toggles 1+ln(tf) term frequency scaling (default on).
func WithSublinearTF(on bool) Option {
	return func(v *Vectorizer) { v.sublinear = on }
}

func newVectorizer(opts []Option) *Vectorizer {
	v := &Vectorizer{minN: 1, maxN: 2, sublinear: true}
	WithStopWords(EnglishStopWords)(v)
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FitTransform learns the vocabulary from docs and returns one vector per
// document, in the same order as docs.
func FitTransform(docs []string, opts ...Option) (*Vectorizer, []Vector) {
	v := newVectorizer(opts)

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		c := countTerms(v.Analyze(doc))
		counts[i] = c
		for term := range c {
			df[term]++
		}
	}

	v.terms = make([]string, 0, len(df))
	for term := range df {
		v.terms = append(v.terms, term)
	}
	sort.Strings(v.terms)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for i, term := range v.terms {
		v.vocab[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	matrix := make([]Vector, len(docs))
	for i, c := range counts {
		matrix[i] = v.weigh(c)
	}
	return v, matrix
}

// Transform vectorizes text with the fitted vocabulary. Terms outside the
// vocabulary are ignored; text with no known terms yields the zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	return v.weigh(countTerms(v.Analyze(text)))
}

// Analyze lowercases and tokenizes text, drops stop words, and returns its
// n-grams, shortest first.
func (v *Vectorizer) Analyze(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}

	var grams []string
	for n := v.minN; n <= v.maxN; n++ {
		if n == 1 {
			grams = append(grams, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

// VocabularySize returns the number of distinct terms learned by
// FitTransform.
func (v *Vectorizer) VocabularySize() int { return len(v.terms) }

func (v *Vectorizer) weigh(counts map[string]int) Vector {
	var vec Vector
	for term, c := range counts {
		i, ok := v.vocab[term]
		if !ok {
			continue
		}
		tf := float64(c)
		if v.sublinear {
			tf = 1 + math.Log(tf)
		}
		vec.Indices = append(vec.Indices, i)
		vec.Values = append(vec.Values, tf*v.idf[i])
	}
	vec.sortByIndex()
	vec.normalize()
	return vec
}

func countTerms(grams []string) map[string]int {
	counts := make(map[string]int, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	return counts
}
