// Package vectorizer fits and applies the TF-IDF vector space shared by
// movies and tracks.
//
// Weights follow the smoothed scheme: idf(t) = ln((1+n)/(1+df(t))) + 1, a
// term in a text weighs count(t)*idf(t), and each vector is L2-normalized.
package vectorizer

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/crosstune/internal/domain/vector"
)

// Space is an immutable vocabulary with per-term IDF weights. Dimension i
// corresponds to terms[i]; terms are sorted lexicographically.
type Space struct {
	terms []string
	idf   []float64
	index map[string]int
}

// Fit builds a Space from corpus. Each element is one document.
func Fit(corpus []string) (*Space, error) {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyCorpus
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	slices.Sort(terms)

	n := float64(len(corpus))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return NewSpace(terms, idf)
}

// NewSpace builds a Space from a sorted term list and aligned IDF weights.
func NewSpace(terms []string, idf []float64) (*Space, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidArtifact)
	}
	if len(terms) != len(idf) {
		return nil, fmt.Errorf("%w: %d terms for %d idf weights", ErrInvalidArtifact, len(terms), len(idf))
	}
	index := make(map[string]int, len(terms))
	for i, t := range terms {
		if t == "" {
			return nil, fmt.Errorf("%w: empty term at %d", ErrInvalidArtifact, i)
		}
		if _, dup := index[t]; dup {
			return nil, fmt.Errorf("%w: duplicate term %q", ErrInvalidArtifact, t)
		}
		if i > 0 && terms[i-1] > t {
			return nil, fmt.Errorf("%w: terms not sorted at %q", ErrInvalidArtifact, t)
		}
		w := idf[i]
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("%w: idf for %q is %v", ErrInvalidArtifact, t, w)
		}
		index[t] = i
	}
	return &Space{
		terms: slices.Clone(terms),
		idf:   slices.Clone(idf),
		index: index,
	}, nil
}

// Dim returns the vocabulary size.
func (s *Space) Dim() int { return len(s.terms) }

// Terms returns a copy of the vocabulary in dimension order.
func (s *Space) Terms() []string { return slices.Clone(s.terms) }

// Term returns the term for dimension i.
func (s *Space) Term(i int) string { return s.terms[i] }

// IDF returns the weight of term and whether it is in the vocabulary.
func (s *Space) IDF(term string) (float64, bool) {
	i, ok := s.index[term]
	if !ok {
		return 0, false
	}
	return s.idf[i], true
}

// TransformOne maps text into the space. Unknown terms are ignored; text
// with no known terms maps to the zero vector.
func (s *Space) TransformOne(text string) vector.Sparse {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text) {
		if i, ok := s.index[tok]; ok {
			counts[i]++
		}
	}
	if len(counts) == 0 {
		return vector.Zero(s.Dim())
	}

	indices := make([]int, 0, len(counts))
	for i := range counts {
		indices = append(indices, i)
	}
	slices.Sort(indices)

	values := make([]float64, len(indices))
	for j, i := range indices {
		values[j] = counts[i] * s.idf[i]
	}
	return vector.Sparse{Dim: s.Dim(), Indices: indices, Values: values}.Normalize()
}

// Transform maps every text, preserving order.
func (s *Space) Transform(texts []string) []vector.Sparse {
	out := make([]vector.Sparse, len(texts))
	for i, t := range texts {
		out[i] = s.TransformOne(t)
	}
	return out
}
